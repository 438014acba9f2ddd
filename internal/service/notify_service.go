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

type SendGridMailer struct {
	client *sendgrid.Client
	from   *mail.Email
	log    *zap.Logger
}

func NewSendGridMailer(apiKey, fromEmail, fromName string, log *zap.Logger) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromEmail),
		log:    log,
	}
}

func (m *SendGridMailer) SendEmail(toEmail, toName, subject, plainText, html string) error {
	message := mail.NewSingleEmail(m.from, subject, mail.NewEmail(toName, toEmail), plainText, html)
	resp, err := m.client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send to %s failed: %w", toEmail, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	m.log.Info("email sent", zap.String("to", toEmail), zap.String("subject", subject), zap.Int("status", resp.StatusCode))
	return nil
}

type TwilioSMS struct {
	client *twilio.RestClient
	from   string
	log    *zap.Logger
}

func NewTwilioSMS(accountSID, authToken, fromNumber string, log *zap.Logger) *TwilioSMS {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSID,
		Password:   authToken,
		AccountSid: accountSID,
	})
	return &TwilioSMS{client: client, from: fromNumber, log: log}
}

func (s *TwilioSMS) SendSMS(toNumber, body string) error {
	if !strings.HasPrefix(toNumber, "+") {
		s.log.Warn("destination number is not E.164, SMS may fail", zap.String("to", toNumber))
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio send to %s failed: %w", toNumber, err)
	}
	if resp != nil && resp.Sid != nil {
		s.log.Info("sms sent", zap.String("to", toNumber), zap.String("sid", *resp.Sid))
	}
	return nil
}
