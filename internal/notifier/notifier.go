package notifier

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/DIVIJ08070/doctor-appointment-app/internal/model"
)

// EmailNotifier sends the booking confirmation email. Delivery is
// best-effort: failures are logged and never surfaced to the booking
// flow.
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func NewEmailNotifier(cfg Config) *EmailNotifier {
	return &EmailNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// BookingConfirmed emails the account holder their appointment summary.
func (n *EmailNotifier) BookingConfirmed(email string, view model.AppointmentView) {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your appointment is booked")
	m.SetBody("text/plain", fmt.Sprintf(
		"Your consultation has been scheduled.\n\nDate: %s\nTime: %s\nReference: %s\n\nYou can pay online from your appointments page, or settle in person.",
		view.Date, view.Time, view.ID,
	))

	if err := n.dialer.DialAndSend(m); err != nil {
		log.Warn().Err(err).Str("appointment_id", view.ID).Msg("failed to send booking confirmation email")
		return
	}
	log.Debug().Str("appointment_id", view.ID).Msg("booking confirmation email sent")
}
