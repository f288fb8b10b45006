package model

import (
	"io"

	"github.com/idlab-discover/salarypred-cli/internal/logging"
	"github.com/idlab-discover/salarypred-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Model:", PrefixColor: ui.FgMagenta}

// SetLogger sets an optional destination for model logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(format string, args ...any) {
	logger.Printf(format, args...)
}
