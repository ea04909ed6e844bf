package delivery

import (
	"bytes"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"portfolio/internal/domain"
)

// Envelope is one outbound email. From is the submitter's address.
type Envelope struct {
	From      string
	To        []string
	Subject   string
	Text      string
	HTML      string
	MessageID string
}

var htmlPolicy = bluemonday.StrictPolicy()

// ComposeEnvelope builds the operator notification for s. The plain-text
// part carries the fields verbatim; the HTML part has them sanitized.
func ComposeEnvelope(s domain.Submission, recipient string) Envelope {
	text := fmt.Sprintf("Name: %s\r\nEmail: %s\r\nMessage: %s\r\n", s.Name, s.Email, s.Message)

	html := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>New Contact Form Message</title></head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #334155;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2>New Contact Form Message</h2>
        <p><strong>Name:</strong> %s</p>
        <p><strong>Email:</strong> %s</p>
        <p style="white-space: pre-wrap;"><strong>Message:</strong><br>%s</p>
    </div>
</body>
</html>`, htmlPolicy.Sanitize(s.Name), htmlPolicy.Sanitize(s.Email), htmlPolicy.Sanitize(s.Message))

	return Envelope{
		From:    headerValue(s.Email),
		To:      []string{recipient},
		Subject: "New Contact Form Message from " + headerValue(s.Name),
		Text:    text,
		HTML:    html,
	}
}

// headerValue folds a user supplied value onto one line so it cannot inject
// extra headers.
func headerValue(v string) string {
	return strings.Join(strings.Fields(v), " ")
}

// renderMIME serializes env as a multipart/alternative message with
// quoted-printable parts.
func renderMIME(env Envelope, date time.Time) ([]byte, error) {
	boundary := "----=_Part_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", env.From)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(env.To, ", "))
	fmt.Fprintf(&buf, "Reply-To: %s\r\n", env.From)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", env.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", date.Format(time.RFC1123Z))
	if env.MessageID != "" {
		fmt.Fprintf(&buf, "Message-ID: %s\r\n", env.MessageID)
	}
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary)

	parts := []struct{ contentType, body string }{
		{"text/plain", env.Text},
		{"text/html", env.HTML},
	}
	for _, p := range parts {
		if p.body == "" {
			continue
		}
		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		fmt.Fprintf(&buf, "Content-Type: %s; charset=UTF-8\r\n", p.contentType)
		buf.WriteString("Content-Transfer-Encoding: quoted-printable\r\n\r\n")
		qp := quotedprintable.NewWriter(&buf)
		if _, err := qp.Write([]byte(p.body)); err != nil {
			return nil, err
		}
		if err := qp.Close(); err != nil {
			return nil, err
		}
		buf.WriteString("\r\n")
	}
	fmt.Fprintf(&buf, "--%s--\r\n", boundary)

	return buf.Bytes(), nil
}
