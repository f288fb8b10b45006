package modelcard

import (
	"io"

	"github.com/idlab-discover/salarypred-cli/internal/logging"
	"github.com/idlab-discover/salarypred-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "ModelCard:", PrefixColor: ui.FgGreen}

// SetLogger sets an optional destination for model card logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(format string, args ...any) {
	logger.Printf(format, args...)
}
