package notify

import (
	"context"

	"hostal-booking/pkg/daterange"
	"hostal-booking/pkg/utils"

	"go.uber.org/zap"
)

// LogNotifier records confirmations instead of sending them. Used when SMTP is not configured.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log.With(zap.String("notifier", "log"))}
}

func (n *LogNotifier) SendConfirmation(_ context.Context, c Confirmation) error {
	n.log.Info("Confirmation (not sent, smtp disabled)",
		zap.String("code", c.Code),
		zap.String("to", c.GuestEmail),
		zap.String("room", c.RoomDescription),
		zap.String("stay", daterange.Range{CheckIn: c.CheckIn, CheckOut: c.CheckOut}.String()),
		zap.Stringer("total", c.Total),
	)
	return nil
}

// New picks the SMTP notifier when a host is configured.
func New(config utils.EmailConfig, log *zap.Logger) Notifier {
	if config.Enabled() {
		return NewSMTPNotifier(config, log)
	}
	return NewLogNotifier(log)
}
