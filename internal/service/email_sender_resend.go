package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"
)

type ResendEmailSender struct {
	client     *resend.Client
	From       string
	SchoolName string
}

func NewResendEmailSender(apiKey string, from string, schoolName string) *ResendEmailSender {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return &ResendEmailSender{}
	}
	return &ResendEmailSender{
		client:     resend.NewClient(apiKey),
		From:       from,
		SchoolName: schoolName,
	}
}

func (s *ResendEmailSender) SendRecoveryCode(ctx context.Context, email string, displayName string, code string) (string, error) {
	if s.client == nil {
		return "", ErrNotConfigured
	}

	greeting := "Hello"
	if strings.TrimSpace(displayName) != "" {
		greeting = "Hello " + strings.TrimSpace(displayName)
	}
	subject := "Your password reset code"
	if s.SchoolName != "" {
		subject = fmt.Sprintf("%s password reset code", s.SchoolName)
	}
	html := fmt.Sprintf(
		"<p>%s,</p><p>Your password reset code is:</p><p style=\"font-size:24px;letter-spacing:2px\"><strong>%s</strong></p><p>The code expires in 15 minutes. If you did not request a reset, ignore this message.</p>",
		greeting, code,
	)
	text := fmt.Sprintf("%s,\n\nYour password reset code is %s. It expires in 15 minutes.", greeting, code)

	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.From,
		To:      []string{email},
		Subject: subject,
		Html:    html,
		Text:    text,
	})
	if err != nil {
		return "", err
	}
	return sent.Id, nil
}
