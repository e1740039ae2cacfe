package notifier

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/danidevdc/calendar-citas-app/internal/config"
	"github.com/danidevdc/calendar-citas-app/internal/model"
)

// Notifier tells the operator about booking changes. Every call is best
// effort: the caller logs failures and moves on.
type Notifier interface {
	CitaCreated(ctx context.Context, cita *model.Cita) error
	CitaUpdated(ctx context.Context, cita *model.Cita) error
	CitaDeleted(ctx context.Context, cita *model.Cita) error
}

type noopNotifier struct{}

func NewNoop() Notifier { return noopNotifier{} }

func (noopNotifier) CitaCreated(context.Context, *model.Cita) error { return nil }
func (noopNotifier) CitaUpdated(context.Context, *model.Cita) error { return nil }
func (noopNotifier) CitaDeleted(context.Context, *model.Cita) error { return nil }

type emailNotifier struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewEmail builds an SMTP-backed notifier from config.
func NewEmail(cfg config.SMTPConfig) Notifier {
	return &emailNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		to:     cfg.To,
	}
}

func (n *emailNotifier) CitaCreated(ctx context.Context, cita *model.Cita) error {
	subject := fmt.Sprintf("Nueva cita: %s", cita.FullName())
	return n.send(subject, n.body("Se agendó una nueva cita.", cita))
}

func (n *emailNotifier) CitaUpdated(ctx context.Context, cita *model.Cita) error {
	subject := fmt.Sprintf("Cita actualizada: %s", cita.FullName())
	return n.send(subject, n.body("Se actualizó una cita.", cita))
}

func (n *emailNotifier) CitaDeleted(ctx context.Context, cita *model.Cita) error {
	subject := fmt.Sprintf("Cita eliminada: %s", cita.FullName())
	return n.send(subject, n.body("Se eliminó una cita.", cita))
}

func (n *emailNotifier) body(lead string, cita *model.Cita) string {
	return fmt.Sprintf("%s\n\nPaciente: %s\nCarrera: %s\nFecha: %s %s\nDuración: %d min\nEstado: %s\n",
		lead, cita.FullName(), cita.Carrera, cita.Fecha, cita.Hora, cita.DuracionOrDefault(), cita.Estado)
}

func (n *emailNotifier) send(subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}
	return nil
}
