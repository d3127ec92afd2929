package services

import (
	"html/template"
	"strings"

	"github.com/avunculargroup/avuncular-web/internal/models"
	apperrors "github.com/avunculargroup/avuncular-web/pkg/errors"
)

// AcknowledgementSubject is the fixed subject of the reply to the submitter
const AcknowledgementSubject = "We received your message"

// NotificationSubjectPrefix tags notifications in the company inbox
const NotificationSubjectPrefix = "[Website] "

// Templates are single-line so composed bodies carry no newline characters.
var (
	notificationTemplate = template.Must(template.New("notification").Parse(
		`<p>New message from {{.Name}} ({{.Email}})</p>` +
			`<p>{{.Message}}</p>`))

	acknowledgementTemplate = template.Must(template.New("acknowledgement").Parse(
		`<p>Hi {{.Name}},</p>` +
			`<p>Thanks for reaching out to {{.Company}}. Here's what you sent:</p>` +
			`<p>{{.Message}}</p>` +
			`<p>We’ll reply shortly.</p>`))
)

type bodyData struct {
	Name    string
	Email   string
	Company string
	Message template.HTML
}

// SanitizeMessage escapes HTML in the free-text message and turns every line
// break into <br />. The result is safe to embed as markup.
func SanitizeMessage(message string) template.HTML {
	normalized := strings.ReplaceAll(message, "\r\n", "\n")
	escaped := template.HTMLEscapeString(normalized)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br />")) //nolint:gosec // escaped above
}

// Composer builds the two outbound messages for a submission
type Composer struct {
	From  models.EmailAddress
	Inbox models.EmailAddress
}

// Compose returns the notification for the company inbox followed by the
// acknowledgement for the submitter.
func (c Composer) Compose(sub *models.ContactSubmission) ([]models.OutboundEmailMessage, error) {
	data := bodyData{
		Name:    sub.Name,
		Email:   sub.Email,
		Company: c.Inbox.Name,
		Message: SanitizeMessage(sub.Message),
	}

	notification, err := render(notificationTemplate, data)
	if err != nil {
		return nil, err
	}
	acknowledgement, err := render(acknowledgementTemplate, data)
	if err != nil {
		return nil, err
	}

	submitter := models.EmailAddress{Email: sub.Email, Name: sub.Name}

	return []models.OutboundEmailMessage{
		{
			From:     c.From,
			To:       c.Inbox,
			ReplyTo:  &submitter,
			Subject:  NotificationSubjectPrefix + sub.Subject,
			HTMLBody: notification,
		},
		{
			From:     c.From,
			To:       submitter,
			Subject:  AcknowledgementSubject,
			HTMLBody: acknowledgement,
		},
	}, nil
}

func render(tpl *template.Template, data bodyData) (string, error) {
	var sb strings.Builder
	if err := tpl.Execute(&sb, data); err != nil {
		return "", apperrors.InternalError("render "+tpl.Name()+" body", err)
	}
	return sb.String(), nil
}
