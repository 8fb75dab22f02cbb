package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendPurchaseReceipt(toEmail string, credits float64, amount float64, paymentRef string) error
	SendUnresolvedGrantAlert(adminEmail, customerEmail, paymentRef string, credits float64) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendPurchaseReceipt(toEmail string, credits float64, amount float64, paymentRef string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your PepperAI Credit Purchase")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Thanks for your purchase!</h2>
			<p><strong>%.0f credits</strong> have been added to your account.</p>
			<p>Amount paid: $%.2f</p>
			<p style="color: #888; font-size: 12px;">Payment reference: %s</p>
			<p>Happy generating!</p>
		</div>
	`, credits, amount, paymentRef)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send receipt to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Receipt sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendUnresolvedGrantAlert(adminEmail, customerEmail, paymentRef string, credits float64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", adminEmail)
	m.SetHeader("Subject", "Unresolved credit grant needs attention")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Unresolved Credit Grant</h2>
			<p>A completed payment could not be matched to a user account.</p>
			<ul>
				<li>Customer email: %s</li>
				<li>Payment reference: %s</li>
				<li>Credits: %.0f</li>
			</ul>
			<p>Please resolve it manually from the admin dashboard.</p>
		</div>
	`, customerEmail, paymentRef, credits)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send unresolved grant alert to %s: %v\n", adminEmail, err)
		return err
	}

	return nil
}
