package validator

import (
	"io"

	"github.com/idlab-discover/salarypred-cli/internal/logging"
	"github.com/idlab-discover/salarypred-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Validate:", PrefixColor: ui.FgCyan}

// SetLogger sets an optional destination for validator logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(format string, args ...any) {
	logger.Printf(format, args...)
}
