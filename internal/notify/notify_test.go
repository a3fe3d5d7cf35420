package notify

import (
	"context"
	"strings"
	"testing"
	"time"

	"hostal-booking/pkg/utils"

	"go.uber.org/zap"
)

func sampleConfirmation() Confirmation {
	return Confirmation{
		GuestEmail:      "jane@example.com",
		GuestName:       "Jane Doe",
		Code:            "HDT-202412-0001",
		RoomDescription: "Room 101 (double)",
		CheckIn:         time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:        time.Date(2024, 12, 3, 0, 0, 0, 0, time.UTC),
		Total:           4000,
	}
}

func TestConfirmationBody(t *testing.T) {
	body := confirmationBody(sampleConfirmation())
	for _, want := range []string{"Jane Doe", "HDT-202412-0001", "2024-12-01", "2024-12-03", "40.00"} {
		if !strings.Contains(body, want) {
			t.Errorf("body is missing %q:\n%s", want, body)
		}
	}
}

func TestNewFallsBackToLog(t *testing.T) {
	n := New(utils.EmailConfig{}, zap.NewNop())
	if _, ok := n.(*LogNotifier); !ok {
		t.Fatalf("got %T, want *LogNotifier", n)
	}
	if err := n.SendConfirmation(context.Background(), sampleConfirmation()); err != nil {
		t.Fatalf("log notifier: %v", err)
	}

	n = New(utils.EmailConfig{Host: "smtp.example.com", Port: 587}, zap.NewNop())
	if _, ok := n.(*SMTPNotifier); !ok {
		t.Fatalf("got %T, want *SMTPNotifier", n)
	}
}
