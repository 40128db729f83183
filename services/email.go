package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"jacha_aru_api_go/config"
	"jacha_aru_api_go/logger"
	"jacha_aru_api_go/models"

	"github.com/resend/resend-go/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Email is an outgoing message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

//go:generate mockgen -destination=notifier_mock_test.go -package=services . Notifier

// Notifier delivers emails
type Notifier interface {
	Send(ctx context.Context, email *Email) error
}

// ResendNotifier sends through the Resend API. In test mode it only logs.
type ResendNotifier struct {
	cfg    *config.Config
	client *resend.Client
}

func NewResendNotifier(cfg *config.Config) *ResendNotifier {
	n := &ResendNotifier{cfg: cfg}
	if cfg.ResendAPIKey != "" {
		n.client = resend.NewClient(cfg.ResendAPIKey)
	}
	return n
}

func (n *ResendNotifier) Send(_ context.Context, email *Email) error {
	log := logger.Named("email")

	if n.cfg.EmailTestMode {
		log.Info("email not sent (test mode)",
			zap.Strings("to", email.To),
			zap.String("subject", email.Subject),
			zap.String("text", email.TextBody),
		)
		return nil
	}
	if n.client == nil {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}
	if email.HTMLBody == "" && email.TextBody == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := n.client.Emails.Send(&resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", n.cfg.EmailFromName, n.cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	})
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	log.Info("email sent", zap.String("id", sent.Id), zap.Strings("to", email.To))
	return nil
}

// SendEmailAsync sends a copy of email in the background; failures are logged
func SendEmailAsync(n Notifier, email *Email) {
	if n == nil {
		return
	}
	copied := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}
	go func() {
		if err := n.Send(context.Background(), copied); err != nil {
			logger.Named("email").Error("async email failed", zap.Error(err), zap.Strings("to", copied.To))
		}
	}()
}

// RespuestaEmailData feeds the respuesta notification templates
type RespuestaEmailData struct {
	Nombre      string
	Kind        models.ConsultaKind
	ConsultaID  uint
	Costo       decimal.Decimal
	HasDocument bool
}

var respuestaHTML = template.Must(template.New("respuesta_html").Parse(
	`<p>Hola {{.Nombre}},</p>
<p>Tu consulta {{.Kind}} #{{.ConsultaID}} tiene una nueva respuesta con un costo de <strong>{{.Costo.StringFixed 2}}</strong>.</p>
{{if .HasDocument}}<p>La respuesta incluye un documento adjunto disponible en la plataforma.</p>{{end}}`))

const respuestaText = "Hola %s,\n\nTu consulta %s #%d tiene una nueva respuesta con un costo de %s.\n%s"

// BuildRespuestaEmail tells a usuario that one of their consultas was answered
func BuildRespuestaEmail(usuario *models.Usuario, data RespuestaEmailData) (*Email, error) {
	data.Nombre = usuario.FullName()

	var html bytes.Buffer
	if err := respuestaHTML.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to render respuesta email: %w", err)
	}

	var extra string
	if data.HasDocument {
		extra = "La respuesta incluye un documento adjunto.\n"
	}

	return &Email{
		To:       []string{usuario.Mail},
		Subject:  fmt.Sprintf("Respuesta a tu consulta #%d", data.ConsultaID),
		HTMLBody: strings.TrimSpace(html.String()),
		TextBody: fmt.Sprintf(respuestaText, data.Nombre, data.Kind, data.ConsultaID, data.Costo.StringFixed(2), extra),
	}, nil
}
