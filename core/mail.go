package core

import (
	"bytes"
	htmltmpl "html/template"
	"net/mail"
	"sync"
	texttmpl "text/template"

	"github.com/pkg/errors"
)

var (
	templates tmplCache
	tmplInit  sync.Once
	tmplErr   error

	// emailTemplates holds the {text, html} sources of every email, keyed by template name.
	emailTemplates = map[string][2]string{
		"teacher_status": {
			`Hi {{.Data.Name}},

Your application to teach on {{.AppName}} as "{{.Data.Title}}" has been {{.Data.Status}}.
{{if eq .Data.Status "approved"}}
You can now create classes from your dashboard.
{{else}}
You are welcome to apply again later.
{{end}}
The {{.AppName}} team`,
			`<p>Hi {{.Data.Name}},</p>
<p>Your application to teach on {{.AppName}} as <b>{{.Data.Title}}</b> has been <b>{{.Data.Status}}</b>.</p>
{{if eq .Data.Status "approved"}}<p>You can now create classes from your dashboard.</p>{{else}}<p>You are welcome to apply again later.</p>{{end}}
<p>The {{.AppName}} team</p>`,
		},
	}
)

type (
	tmplCacheEntry struct {
		text *texttmpl.Template
		html *htmltmpl.Template
	}
	tmplCache map[string]tmplCacheEntry

	EmailMessage struct {
		To      []mail.Address
		Cc      []mail.Address
		Bcc     []mail.Address
		Subject string
		BodyStr string // simple text/plain, non-templated content

		// templated contents
		TemplateName string
		TemplateData interface{}
		TextContent  string
		HTMLContent  string
	}

	ContextData struct {
		AppName string
		Data    interface{}
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}
)

func parseTemplates() {
	templates = make(tmplCache, len(emailTemplates))
	for name, src := range emailTemplates {
		txt, err := texttmpl.New(name).Option("missingkey=error").Parse(src[0])
		if err != nil {
			tmplErr = errors.Wrapf(err, "parsing %s text template", name)
			return
		}
		html, err := htmltmpl.New(name).Option("missingkey=error").Parse(src[1])
		if err != nil {
			tmplErr = errors.Wrapf(err, "parsing %s html template", name)
			return
		}
		templates[name] = tmplCacheEntry{text: txt, html: html}
	}
}

// Render fills TextContent and HTMLContent from BodyStr or the named template.
func (m *EmailMessage) Render(appName string) error {
	if m.BodyStr != "" {
		m.TextContent = m.BodyStr
		return nil
	}
	if m.TemplateName == "" {
		return nil
	}

	tmplInit.Do(parseTemplates) // only execute once during first request
	if tmplErr != nil {
		return tmplErr
	}
	entry, ok := templates[m.TemplateName]
	if !ok {
		return errors.Errorf("unknown email template %q", m.TemplateName)
	}

	data := ContextData{AppName: appName, Data: m.TemplateData}
	var buff bytes.Buffer
	if err := entry.text.Execute(&buff, data); err != nil {
		return errors.Wrap(err, "rendering text")
	}
	m.TextContent = buff.String()

	buff.Reset()
	if err := entry.html.Execute(&buff, data); err != nil {
		return errors.Wrap(err, "rendering html")
	}
	m.HTMLContent = buff.String()
	return nil
}

func (m *EmailMessage) HasRecipients() bool { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool    { return (m.TextContent != "") || (m.HTMLContent != "") }
