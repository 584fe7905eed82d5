package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/meridianfs/meridian-backend/internal/config"
)

// Notifier delivers credentials-related messages to account holders.
type Notifier interface {
	SendPasswordResetCode(ctx context.Context, to, code string, expiresAt time.Time) error
}

// Mailer sends notifications over SMTP.
type Mailer struct {
	cfg *config.Config
}

func NewMailer(cfg *config.Config) (*Mailer, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.SMTPFrom == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}
	return &Mailer{cfg: cfg}, nil
}

func (m *Mailer) SendPasswordResetCode(ctx context.Context, to, code string, expiresAt time.Time) error {
	minutes := int(time.Until(expiresAt).Round(time.Minute).Minutes())

	subject := "Your password reset code"
	body := fmt.Sprintf(
		"Hello,\n\n"+
			"Your password reset code is: %s\n\n"+
			"The code is valid for %d minutes. If you did not request a password "+
			"reset, you can ignore this message.\n\n"+
			"Meridian Financial Services\n",
		code, minutes,
	)

	msg := mail.NewMsg()

	if m.cfg.SMTPFromName != "" {
		if err := msg.FromFormat(m.cfg.SMTPFromName, m.cfg.SMTPFrom); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(m.cfg.SMTPFrom); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(m.cfg.SMTPPort),
	}

	if m.cfg.SMTPTLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		// Implicit TLS for port 465, STARTTLS otherwise
		if m.cfg.SMTPPort == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if m.cfg.SMTPUsername != "" && m.cfg.SMTPPassword != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.SMTPUsername),
			mail.WithPassword(m.cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(m.cfg.SMTPHost, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}
