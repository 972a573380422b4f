package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"strings"
	texttemplate "text/template"
	"time"

	"clubscheduler/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// executor is satisfied by both html/template and text/template templates.
type executor interface {
	Execute(w io.Writer, data any) error
}

var templateFuncs = map[string]any{
	"datetime": func(t time.Time) string { return t.Format("Mon 2 Jan 2006 15:04 MST") },
	"upper":    strings.ToUpper,
}

// templateRenderer implements domain.EmailTemplateRenderer using embedded template files.
// A template named n consists of n_subject.txt, n.html and n.txt.
type templateRenderer struct{}

// NewTemplateRenderer returns an EmailTemplateRenderer that loads templates from the embedded templates folder.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{}
}

// Render executes the named template (e.g. "registration_confirmation") with data and returns subject, html, and text bodies.
func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	subject, err = render(templateName+"_subject.txt", data, false)
	if err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	htmlBody, err = render(templateName+".html", data, true)
	if err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	textBody, err = render(templateName+".txt", data, false)
	if err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	return strings.TrimSpace(subject), htmlBody, textBody, nil
}

func render(name string, data any, html bool) (string, error) {
	raw, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", err
	}
	var t executor
	if html {
		t, err = htmltemplate.New(name).Funcs(templateFuncs).Parse(string(raw))
	} else {
		t, err = texttemplate.New(name).Funcs(templateFuncs).Parse(string(raw))
	}
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
