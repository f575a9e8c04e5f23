package cli

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/compactsheet/pkg/observability"
)

// logHooks reports layout events through the CLI logger.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) observability.LayoutHooks {
	return logHooks{logger: l}
}

func (h logHooks) OnConfigUpdate(err error) {
	if err != nil {
		h.logger.Debug("config update rejected", "err", err)
	}
}

func (h logHooks) OnDistributeStart(blockCount, columns int) {
	h.logger.Debug("distributing", "blocks", blockCount, "columns", columns)
}

func (h logHooks) OnDistributeComplete(blockCount int, balance, risk float64, d time.Duration, err error) {
	if err != nil {
		return
	}
	h.logger.Debug("distribution complete",
		"blocks", blockCount,
		"balance", balance,
		"overflow_risk", risk,
		"duration", d)
}

func (h logHooks) OnBlockSplit(sourceID, tailID string, column int) {
	h.logger.Debug("split block", "source", sourceID, "tail", tailID, "column", column+1)
}

func (h logHooks) OnOverflow(blockID string, column int, excess float64) {
	h.logger.Debug("block overflows column", "block", blockID, "column", column+1, "excess_in", excess)
}
