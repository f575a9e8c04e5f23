package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/compactsheet/pkg/config"
	"github.com/matzehuels/compactsheet/pkg/errors"
)

// validateCommand creates the validate command. It reports every violation
// at once instead of stopping at the first.
func (c *CLI) validateCommand() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a configuration against the compact layout bounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := flags.partial(cmd)
			if err != nil {
				return err
			}
			res := config.Validate(config.ApplyDefaults(p))

			w := cmd.OutOrStdout()
			suggestions := res.Suggestions()
			for i, msg := range res.Errors {
				printError(w, "%s", msg)
				if i < len(suggestions) && suggestions[i] != "" {
					printDetail(w, "%s", suggestions[i])
				}
			}
			for _, msg := range res.Warnings {
				printWarning(w, "%s", msg)
			}
			if !res.Valid {
				return errors.New(errors.ErrCodeInvalidConfig, "%d configuration error(s)", len(res.Errors))
			}
			printSuccess(w, "Configuration is valid")
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
