package service

import (
	"context"
	"fmt"
	"time"

	"beedical/config"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const (
	confirmationSubject = "Confirmation de rendez-vous"
	verificationSubject = "Votre code de vérification"

	mailRetryWait    = 500 * time.Millisecond
	mailRetryMaxWait = 3 * time.Second
)

// AppointmentConfirmation is the content of the mail sent when a doctor
// confirms an appointment
type AppointmentConfirmation struct {
	To          string
	PatientName string
	DoctorName  string
	Date        time.Time
	StartTime   string
	EndTime     string
}

// Notifier delivers outbound messages. Callers treat every send as best
// effort.
type Notifier interface {
	SendAppointmentConfirmation(ctx context.Context, msg AppointmentConfirmation) error
	SendVerificationCode(ctx context.Context, to, code string) error
}

// NewNotifier picks the mail provider when mail is enabled and the log sink
// otherwise
func NewNotifier(cfg config.MailConfig, log *logrus.Logger) Notifier {
	if !cfg.Enabled || cfg.BaseURL == "" {
		log.Info("Mail delivery disabled, notifications are logged only")
		return NewLogNotifier(log)
	}
	return NewMailNotifier(cfg, log)
}

// LogNotifier writes messages to the log instead of sending them
type LogNotifier struct {
	log *logrus.Logger
}

func NewLogNotifier(log *logrus.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendAppointmentConfirmation(ctx context.Context, msg AppointmentConfirmation) error {
	n.log.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": confirmationSubject,
		"doctor":  msg.DoctorName,
		"date":    msg.Date.Format("2006-01-02"),
		"slot":    msg.StartTime + "-" + msg.EndTime,
	}).Info("Appointment confirmation (mail disabled)")
	return nil
}

func (n *LogNotifier) SendVerificationCode(ctx context.Context, to, code string) error {
	n.log.WithFields(logrus.Fields{
		"to":      to,
		"subject": verificationSubject,
	}).Info("Verification code issued (mail disabled)")
	return nil
}

type mailRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

type mailResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// MailNotifier posts messages to an HTTP mail provider
type MailNotifier struct {
	httpClient *resty.Client
	sender     string
	log        *logrus.Logger
}

func NewMailNotifier(cfg config.MailConfig, log *logrus.Logger) *MailNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetRetryCount(3).
		SetRetryWaitTime(mailRetryWait).
		SetRetryMaxWaitTime(mailRetryMaxWait).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetAuthToken(cfg.APIKey)

	return &MailNotifier{
		httpClient: client,
		sender:     cfg.Sender,
		log:        log,
	}
}

func (n *MailNotifier) SendAppointmentConfirmation(ctx context.Context, msg AppointmentConfirmation) error {
	return n.send(ctx, msg.To, confirmationSubject, confirmationText(msg))
}

func (n *MailNotifier) SendVerificationCode(ctx context.Context, to, code string) error {
	text := fmt.Sprintf("Votre code de vérification Beedical est : %s", code)
	return n.send(ctx, to, verificationSubject, text)
}

func (n *MailNotifier) send(ctx context.Context, to, subject, text string) error {
	var result mailResponse
	resp, err := n.httpClient.R().
		SetContext(ctx).
		SetBody(mailRequest{
			From:    n.sender,
			To:      to,
			Subject: subject,
			Text:    text,
		}).
		SetResult(&result).
		Post("/send")
	if err != nil {
		return fmt.Errorf("failed to call mail provider: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("mail provider returned status %d", resp.StatusCode())
	}

	n.log.WithFields(logrus.Fields{
		"to":         to,
		"subject":    subject,
		"message_id": result.ID,
	}).Info("Mail sent")
	return nil
}

func confirmationText(msg AppointmentConfirmation) string {
	return fmt.Sprintf(
		"Bonjour %s,\n\nVotre rendez-vous avec %s le %s de %s à %s est confirmé.\n\nL'équipe Beedical",
		msg.PatientName,
		msg.DoctorName,
		msg.Date.Format("02/01/2006"),
		msg.StartTime,
		msg.EndTime,
	)
}
