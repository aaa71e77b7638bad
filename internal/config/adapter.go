package config

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/erraggy/asyncspec/builder"
)

// ZerologAdapter implements builder.Logger on top of a zerolog.Logger.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// Debug implements builder.Logger.
func (z *ZerologAdapter) Debug(msg string, attrs ...any) { z.emit(z.logger.Debug(), msg, attrs) }

// Info implements builder.Logger.
func (z *ZerologAdapter) Info(msg string, attrs ...any) { z.emit(z.logger.Info(), msg, attrs) }

// Warn implements builder.Logger.
func (z *ZerologAdapter) Warn(msg string, attrs ...any) { z.emit(z.logger.Warn(), msg, attrs) }

// Error implements builder.Logger.
func (z *ZerologAdapter) Error(msg string, attrs ...any) { z.emit(z.logger.Error(), msg, attrs) }

// With implements builder.Logger.
func (z *ZerologAdapter) With(attrs ...any) builder.Logger {
	return &ZerologAdapter{logger: z.logger.With().Fields(pairs(attrs)).Logger()}
}

func (z *ZerologAdapter) emit(e *zerolog.Event, msg string, attrs []any) {
	e.Fields(pairs(attrs)).Msg(msg)
}

// pairs turns slog-style key-value arguments into zerolog fields. A
// trailing key without a value is kept under "!BADKEY", as slog does.
func pairs(attrs []any) map[string]any {
	if len(attrs) == 0 {
		return nil
	}
	fields := make(map[string]any, (len(attrs)+1)/2)
	for i := 0; i < len(attrs); i += 2 {
		if i+1 == len(attrs) {
			fields["!BADKEY"] = attrs[i]
			break
		}
		fields[fmt.Sprint(attrs[i])] = attrs[i+1]
	}
	return fields
}

var _ builder.Logger = (*ZerologAdapter)(nil)
