package cli

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/matzehuels/compactsheet/internal/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout engine as a JSON HTTP API",
		Long: `Serve the layout engine as a JSON HTTP API.

Endpoints:
  POST /v1/geometry    compute page geometry for a configuration
  POST /v1/validate    validate a configuration
  POST /v1/distribute  distribute content units into columns

Each request carries its own configuration; the server keeps no state.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := server.New(c.Logger, newLogHooks(c.Logger))
			err := srv.ListenAndServe(cmd.Context(), addr)
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	return cmd
}
