package calculation

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Logger is a minimal logging interface for the calculation engine.
// Implementations should be fast; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// ZerologLogger adapts a zerolog.Logger to the engine's Logger interface.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger wraps l; the component field tags every engine line.
func NewZerologLogger(l zerolog.Logger) ZerologLogger {
	return ZerologLogger{log: l.With().Str("component", "payroll-engine").Logger()}
}

func (z ZerologLogger) Debugf(format string, args ...any) { z.log.Debug().Msg(fmt.Sprintf(format, args...)) }
func (z ZerologLogger) Infof(format string, args ...any)  { z.log.Info().Msg(fmt.Sprintf(format, args...)) }
func (z ZerologLogger) Warnf(format string, args ...any)  { z.log.Warn().Msg(fmt.Sprintf(format, args...)) }
func (z ZerologLogger) Errorf(format string, args ...any) { z.log.Error().Msg(fmt.Sprintf(format, args...)) }
