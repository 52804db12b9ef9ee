package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"portfolio-api/internal/models"
)

// Template names, also used as metric labels.
const (
	TemplateContactNotification = "contact-notification"
	TemplateContactAutoReply    = "contact-auto-reply"
	TemplateNewsletterWelcome   = "newsletter-welcome"
	TemplateUnsubscribeConfirm  = "unsubscribe-confirm"
	TemplateTestimonialReceived = "testimonial-received"
)

var emailTmpl = template.Must(template.New("emails").Parse(`
{{define "contact-notification"}}
<h2>New contact message</h2>
<p><strong>From:</strong> {{.Contact.Name}} &lt;{{.Contact.Email}}&gt;</p>
{{if .Contact.Phone}}<p><strong>Phone:</strong> {{.Contact.Phone}}</p>{{end}}
<p><strong>Subject:</strong> {{.Contact.Subject}}</p>
<p>{{.Contact.Message}}</p>
{{end}}

{{define "contact-auto-reply"}}
<p>Hi {{.Contact.Name}},</p>
<p>Thanks for reaching out. Your message has been received and I will reply as
soon as possible, usually within one or two business days.</p>
<p>— {{.SiteName}}</p>
{{end}}

{{define "newsletter-welcome"}}
<p>Hi{{if .Subscriber.Name}} {{.Subscriber.Name}}{{end}},</p>
<p>Welcome to the {{.SiteName}} newsletter. You will get occasional updates
about new posts and projects. No spam, unsubscribe anytime.</p>
{{end}}

{{define "unsubscribe-confirm"}}
<p>You have been unsubscribed from the {{.SiteName}} newsletter.
Sorry to see you go.</p>
{{end}}

{{define "testimonial-received"}}
<p>Hi {{.Testimonial.Name}},</p>
<p>Thanks for your testimonial! It has been received and will appear on the
site once reviewed.</p>
<p>— {{.SiteName}}</p>
{{end}}
`))

type templateData struct {
	SiteName    string
	Contact     *models.Contact
	Subscriber  *models.Subscriber
	Testimonial *models.Testimonial
}

func (m *Mailer) render(name string, data templateData) string {
	data.SiteName = m.siteName
	var buf bytes.Buffer
	if err := emailTmpl.ExecuteTemplate(&buf, name, data); err != nil {
		// templates are static; a failure here is a programming error
		panic(fmt.Sprintf("mailer: render %s: %v", name, err))
	}
	return buf.String()
}

// ContactNotification is the admin-facing alert for a new contact message.
func (m *Mailer) ContactNotification(c *models.Contact) Message {
	return Message{
		Template: TemplateContactNotification,
		To:       m.adminEmail,
		Subject:  fmt.Sprintf("[%s] New contact: %s", m.siteName, c.Subject),
		HTML:     m.render(TemplateContactNotification, templateData{Contact: c}),
	}
}

// ContactAutoReply acknowledges the sender of a contact message.
func (m *Mailer) ContactAutoReply(c *models.Contact) Message {
	return Message{
		Template: TemplateContactAutoReply,
		To:       c.Email,
		Subject:  fmt.Sprintf("Thanks for getting in touch — %s", m.siteName),
		HTML:     m.render(TemplateContactAutoReply, templateData{Contact: c}),
	}
}

// NewsletterWelcome greets a new subscriber.
func (m *Mailer) NewsletterWelcome(s *models.Subscriber) Message {
	return Message{
		Template: TemplateNewsletterWelcome,
		To:       s.Email,
		Subject:  fmt.Sprintf("Welcome to the %s newsletter", m.siteName),
		HTML:     m.render(TemplateNewsletterWelcome, templateData{Subscriber: s}),
	}
}

// UnsubscribeConfirm confirms removal from the newsletter.
func (m *Mailer) UnsubscribeConfirm(s *models.Subscriber) Message {
	return Message{
		Template: TemplateUnsubscribeConfirm,
		To:       s.Email,
		Subject:  fmt.Sprintf("Unsubscribed from %s", m.siteName),
		HTML:     m.render(TemplateUnsubscribeConfirm, templateData{Subscriber: s}),
	}
}

// TestimonialReceived acknowledges a submitted testimonial.
func (m *Mailer) TestimonialReceived(ts *models.Testimonial) Message {
	return Message{
		Template: TemplateTestimonialReceived,
		To:       ts.Email,
		Subject:  fmt.Sprintf("Thanks for your testimonial — %s", m.siteName),
		HTML:     m.render(TemplateTestimonialReceived, templateData{Testimonial: ts}),
	}
}
