package logging

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger builds a stderr-style logger at the given level.
func NewLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:  lvl,
		Prefix: "summarize",
	}), nil
}
