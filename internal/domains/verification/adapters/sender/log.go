// Package sender holds code delivery adapters. Production wires an email or
// SMS gateway; development logs the code so the flow stays testable offline.
package sender

import (
	"context"
	"log/slog"

	"github.com/thinkfashz/Osart/internal/domains/verification/ports"
)

var _ ports.Sender = (*LogSender)(nil)

// LogSender writes codes to the structured log instead of delivering them.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, destination, code string) error {
	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "verification code issued",
			slog.String("destination", destination), slog.String("code", code))
	}
	return nil
}
