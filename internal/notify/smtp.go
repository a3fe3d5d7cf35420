package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"hostal-booking/pkg/daterange"
	"hostal-booking/pkg/utils"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

type SMTPNotifier struct {
	config utils.EmailConfig
	log    *zap.Logger
}

func NewSMTPNotifier(config utils.EmailConfig, log *zap.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		config: config,
		log:    log.With(zap.String("notifier", "smtp")),
	}
}

func (n *SMTPNotifier) SendConfirmation(ctx context.Context, c Confirmation) error {
	m := mail.NewMsg()
	if err := m.From(fmt.Sprintf("%s <%s>", n.config.FromName, n.config.From)); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := m.To(c.GuestEmail); err != nil {
		return fmt.Errorf("set recipient %s: %w", c.GuestEmail, err)
	}
	m.Subject(fmt.Sprintf("Reservation %s confirmed - %s", c.Code, n.config.FromName))
	m.SetBodyString(mail.TypeTextPlain, confirmationBody(c))

	client, err := mail.NewClient(n.config.Host,
		mail.WithPort(n.config.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.config.User),
		mail.WithPassword(n.config.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTLSConfig(&tls.Config{ServerName: n.config.Host}),
	)
	if err != nil {
		return fmt.Errorf("create smtp client (host=%s port=%d): %w", n.config.Host, n.config.Port, err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send confirmation %s (host=%s port=%d): %w", c.Code, n.config.Host, n.config.Port, err)
	}

	n.log.Info("Confirmation email sent",
		zap.String("code", c.Code),
		zap.String("to", c.GuestEmail),
	)
	return nil
}

func confirmationBody(c Confirmation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", c.GuestName)
	fmt.Fprintf(&b, "Your reservation %s is confirmed.\n\n", c.Code)
	fmt.Fprintf(&b, "Room:      %s\n", c.RoomDescription)
	fmt.Fprintf(&b, "Check-in:  %s\n", c.CheckIn.Format(daterange.DateLayout))
	fmt.Fprintf(&b, "Check-out: %s\n", c.CheckOut.Format(daterange.DateLayout))
	fmt.Fprintf(&b, "Total:     %s\n\n", c.Total)
	b.WriteString("Please quote the reservation code at check-in.\n")
	return b.String()
}
