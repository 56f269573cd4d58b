package service

import (
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

type EmailSender interface {
	SendEmail(toEmail, toName, subject, plainText, html string) error
}

type SMSSender interface {
	SendSMS(toNumber, body string) error
}

type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	logger    *zap.Logger
}

// NewSendGridSender returns nil when the API key or sender address is missing.
func NewSendGridSender(apiKey, fromEmail, fromName string, logger *zap.Logger) *SendGridSender {
	if apiKey == "" || fromEmail == "" {
		logger.Warn("SendGrid no configurado; no se enviarán correos")
		return nil
	}
	return &SendGridSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
		logger:    logger,
	}
}

func (s *SendGridSender) SendEmail(toEmail, toName, subject, plainText, html string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, html)

	response, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("falló el envío del correo a través de SendGrid: %w", err)
	}
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		s.logger.Info("correo enviado",
			zap.String("to", toEmail), zap.String("subject", subject), zap.Int("status", response.StatusCode))
		return nil
	}
	return fmt.Errorf("SendGrid devolvió un estado no exitoso %d: %s", response.StatusCode, response.Body)
}

type TwilioSender struct {
	client     *twilio.RestClient
	fromNumber string
	logger     *zap.Logger
}

// NewTwilioSender returns nil unless SID, token and sender number are all set.
func NewTwilioSender(accountSID, authToken, fromNumber string, logger *zap.Logger) *TwilioSender {
	if accountSID == "" || authToken == "" || fromNumber == "" {
		logger.Warn("Twilio no configurado; no se enviarán SMS")
		return nil
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSID,
		Password:   authToken,
		AccountSid: accountSID,
	})
	return &TwilioSender{client: client, fromNumber: fromNumber, logger: logger}
}

func (s *TwilioSender) SendSMS(toNumber, body string) error {
	if !strings.HasPrefix(toNumber, "+") {
		s.logger.Warn("número de destino fuera de formato E.164", zap.String("to", toNumber))
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(s.fromNumber)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("falló el envío del SMS: %w", err)
	}
	if resp != nil && resp.Sid != nil {
		s.logger.Info("SMS enviado", zap.String("to", toNumber), zap.String("sid", *resp.Sid))
	}
	return nil
}
