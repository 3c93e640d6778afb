package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/smtp"

	"go.uber.org/zap"

	"github.com/ahsan-alam-500/tonycustom/models"
)

// GenerateRandomCode returns a numeric code of the given length.
func GenerateRandomCode(length int) string {
	code := ""
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// Fallback to 0 in the unlikely event of entropy failure
			code += "0"
			continue
		}
		code += n.String()
	}
	return code
}

// EmailSender sends transactional mail.
type EmailSender interface {
	SendOtpEmail(to, otp string) error
	SendContactNotification(contact *models.Contact) error
}

// EmailConfig holds SMTP configuration.
type EmailConfig struct {
	SmtpServer  string
	SmtpPort    string
	SenderEmail string
	SenderPass  string
	SenderName  string
	AdminEmail  string
}

// SMTPSender implements EmailSender over plain SMTP.
type SMTPSender struct {
	cfg    EmailConfig
	logger *zap.Logger
}

// NewSMTPSender creates an SMTPSender.
func NewSMTPSender(cfg EmailConfig, logger *zap.Logger) *SMTPSender {
	return &SMTPSender{cfg: cfg, logger: logger}
}

// SendOtpEmail sends the password-reset code to the user.
func (s *SMTPSender) SendOtpEmail(to, otp string) error {
	subject := "Password Reset Code"
	body := fmt.Sprintf(`<html><body>
<p>Hello,</p>
<p>Use the code below to reset your password:</p>
<p style="font-size:28px;font-weight:bold;letter-spacing:4px">%s</p>
<p>This code expires in 10 minutes. If you did not request a reset, ignore this email.</p>
</body></html>`, otp)

	return s.send(to, subject, body)
}

// SendContactNotification forwards a contact-form message to the shop
// admin inbox.
func (s *SMTPSender) SendContactNotification(contact *models.Contact) error {
	if s.cfg.AdminEmail == "" {
		return nil
	}

	subject := "New contact message: " + contact.Subject
	body := fmt.Sprintf(`<html><body>
<p><strong>From:</strong> %s &lt;%s&gt;</p>
<p><strong>Phone:</strong> %s</p>
<p>%s</p>
</body></html>`, contact.Name, contact.Email, contact.Phone, contact.Message)

	return s.send(s.cfg.AdminEmail, subject, body)
}

func (s *SMTPSender) send(to, subject, htmlBody string) error {
	from := fmt.Sprintf("%s <%s>", s.cfg.SenderName, s.cfg.SenderEmail)

	headers := map[string]string{
		"From":         from,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	auth := smtp.PlainAuth("", s.cfg.SenderEmail, s.cfg.SenderPass, s.cfg.SmtpServer)

	err := smtp.SendMail(
		s.cfg.SmtpServer+":"+s.cfg.SmtpPort,
		auth,
		s.cfg.SenderEmail,
		[]string{to},
		[]byte(message),
	)
	if err != nil {
		s.logger.Error("Failed to send email", zap.String("to", to), zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("Email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
