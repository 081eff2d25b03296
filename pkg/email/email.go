package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"go-careermatch-backend/config"
)

// EmailService handles sending transactional emails via SMTP
type EmailService struct {
	host        string
	port        string
	username    string
	password    string
	fromEmail   string
	frontendURL string
}

// NewEmailService creates a new email service from SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:        cfg.SMTPHost,
		port:        cfg.SMTPPort,
		username:    cfg.SMTPUsername,
		password:    cfg.SMTPPassword,
		fromEmail:   cfg.SMTPFromEmail,
		frontendURL: cfg.FrontendURL,
	}
}

type welcomeEmailData struct {
	FullName string
	UserID   string
	Role     string
}

const welcomeEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Welcome to CareerMatch</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .userid-box { background: white; padding: 15px; border-left: 4px solid #0066cc; margin-top: 10px; font-size: 18px; font-weight: bold; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Welcome to CareerMatch</h1>
        </div>
        <div class="content">
            <p>Hi {{.FullName}},</p>
            <p>Your {{.Role}} account has been created. Use this User ID to sign in:</p>
            <div class="userid-box">{{.UserID}}</div>
        </div>
        <div class="footer">
            <p>If you did not create this account, you can ignore this email.</p>
        </div>
    </div>
</body>
</html>`

type resetEmailData struct {
	ResetLink string
}

const resetEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Password Reset</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .button { display: inline-block; background: #0066cc; color: white; padding: 12px 24px; text-decoration: none; margin-top: 10px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Password Reset Requested</h1>
        </div>
        <div class="content">
            <p>A password reset was requested for your account. The link below is valid for 30 minutes and can be used once.</p>
            <a class="button" href="{{.ResetLink}}">Reset Password</a>
        </div>
        <div class="footer">
            <p>If you did not request this, you can safely ignore this email.</p>
        </div>
    </div>
</body>
</html>`

// SendWelcomeEmail sends the registration confirmation carrying the
// allocated user identifier.
func (s *EmailService) SendWelcomeEmail(to, fullName, userID, role string) error {
	body, err := render(welcomeEmailTemplate, welcomeEmailData{
		FullName: fullName,
		UserID:   userID,
		Role:     role,
	})
	if err != nil {
		return err
	}
	return s.send(to, "Welcome to CareerMatch - Your User ID", body)
}

// SendPasswordResetEmail sends the reset link for an outstanding reset token.
func (s *EmailService) SendPasswordResetEmail(to, resetToken string) error {
	body, err := render(resetEmailTemplate, resetEmailData{
		ResetLink: fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, resetToken),
	})
	if err != nil {
		return err
	}
	return s.send(to, "CareerMatch Password Reset", body)
}

func render(tmplText string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(tmplText)
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func (s *EmailService) send(to, subject, htmlBody string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		to,
		subject,
		htmlBody,
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
