package remote

import (
	"fmt"

	"go.trai.ch/nourish/internal/core/ports"
)

// restyLogger routes resty's diagnostics to the application logger. Request
// failures are returned to callers as well, so they are reported as warnings.
type restyLogger struct {
	log ports.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	if l.log != nil {
		l.log.Warn(fmt.Sprintf(format, v...))
	}
}

func (l restyLogger) Warnf(format string, v ...any) {
	if l.log != nil {
		l.log.Warn(fmt.Sprintf(format, v...))
	}
}

func (restyLogger) Debugf(string, ...any) {}
