package conferences

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/International-Combat-Archery-Alliance/email"
)

//go:embed templates
var templates embed.FS

// SendCreationConfirmationEmail emails the organizer confirming that their
// conference was created. Called outside the creation transaction; a
// failure here must not roll the conference back.
func SendCreationConfirmationEmail(ctx context.Context, emailSender email.Sender, fromAddress string, toAddress string, conf Conference) error {
	htmlBody, err := makeHtmlBody(conf)
	if err != nil {
		return err
	}

	textOnlyBody, err := makeTextOnlyBody(conf)
	if err != nil {
		return err
	}

	return emailSender.SendEmail(ctx, email.Email{
		FromAddress: fromAddress,
		ToAddresses: []string{toAddress},
		Subject:     fmt.Sprintf("Conference created - %q", conf.Name),
		HTMLBody:    htmlBody,
		TextBody:    textOnlyBody,
	})
}

func makeHtmlBody(conf Conference) (string, error) {
	tmpl, err := template.ParseFS(templates, "templates/conference-created.tmpl")
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]any{
		"Conference": conf,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}

	return buf.String(), nil
}

func makeTextOnlyBody(conf Conference) (string, error) {
	tmpl, err := template.ParseFS(templates, "templates/conference-created-textonly.tmpl")
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]any{
		"Conference": conf,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}

	return buf.String(), nil
}
