package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

func smtpDialer() (*gomail.Dialer, string) {
	host := os.Getenv("SMTP_HOST")
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = username
	}
	return gomail.NewDialer(host, port, username, password), from
}

// SendOTP sends a signup verification OTP via email
func SendOTP(to, otp string) error {
	d, from := smtpDialer()

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your Campus Arena verification code")

	body := fmt.Sprintf(`
		<h2>Welcome to Campus Arena!</h2>
		<p>Use the following code to verify your email address:</p>
		<h1 style="font-size: 32px; letter-spacing: 5px;">%s</h1>
		<p>This code expires in 15 minutes.</p>
		<p>If you didn't sign up, you can ignore this email.</p>
	`, otp)
	m.SetBody("text/html", body)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// SendRegistrationConfirmation emails the user after they secure a slot in
// an event. Callers treat failures as non-fatal.
func SendRegistrationConfirmation(to, eventTitle, eventDate, eventTime string) error {
	d, from := smtpDialer()

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("You're registered for %s", eventTitle))

	body := fmt.Sprintf(`
		<h2>Registration confirmed</h2>
		<p>You have secured your slot in <strong>%s</strong>.</p>
		<p>Date: %s at %s</p>
		<p>See you in the arena!</p>
	`, eventTitle, eventDate, eventTime)
	m.SetBody("text/html", body)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}
