package email

import (
	"context"
	"fmt"
	"net"
	"time"

	"ccc_backoffice/platform/config"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender delivers back-office notices over the configured SMTP server
// via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a sender from the mail configuration.
func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	return &SMTPSender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetMailFromName(),
		fromEmail: cfg.GetMailFromAddress(),
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

// SendJobPaid notifies the back office that a job has been fully paid.
func (s *SMTPSender) SendJobPaid(ctx context.Context, toEmail, jobID string, amountCents int64) error {
	content, err := renderNotice(noticeData{
		Title:   "Job paid",
		Heading: "Job paid in full",
		Lines: []string{
			fmt.Sprintf("Job %s has been paid in full.", jobID),
			fmt.Sprintf("Amount received: %s.", formatCurrencyGBP(amountCents)),
		},
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, "Job paid in full", content)
}

// SendCalloutFeeSettled notifies that a partner settled their callout fee.
func (s *SMTPSender) SendCalloutFeeSettled(ctx context.Context, toEmail, calloutID string, feeCents int64) error {
	content, err := renderNotice(noticeData{
		Title:   "Callout fee settled",
		Heading: "Callout fee settled",
		Lines: []string{
			fmt.Sprintf("The fee for emergency callout %s has been settled.", calloutID),
			fmt.Sprintf("Fee collected: %s.", formatCurrencyGBP(feeCents)),
		},
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, "Callout fee settled", content)
}

// SendCalloutFeeReminder nudges the back office about an outstanding fee.
func (s *SMTPSender) SendCalloutFeeReminder(ctx context.Context, toEmail, calloutID string, feeCents int64, outstandingFor string) error {
	content, err := renderNotice(noticeData{
		Title:   "Callout fee outstanding",
		Heading: "Callout fee still outstanding",
		Lines: []string{
			fmt.Sprintf("The fee for emergency callout %s has been outstanding for %s.", calloutID, outstandingFor),
			fmt.Sprintf("Fee due: %s.", formatCurrencyGBP(feeCents)),
		},
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, "Callout fee still outstanding", content)
}

// SendProposalCreated notifies that a new work-start proposal awaits the client.
func (s *SMTPSender) SendProposalCreated(ctx context.Context, toEmail, jobID string, proposedStart time.Time) error {
	content, err := renderNotice(noticeData{
		Title:   "Schedule proposal created",
		Heading: "New work-start proposal",
		Lines: []string{
			fmt.Sprintf("A new work-start proposal was created for job %s.", jobID),
			fmt.Sprintf("Proposed start: %s.", proposedStart.Format("Monday 2 January 2006, 15:04")),
		},
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, "New work-start proposal", content)
}
