package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// noticeData feeds the single generic back-office notification template.
type noticeData struct {
	Title   string
	Heading string
	Lines   []string
}

func renderNotice(data noticeData) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/notice.html")
	if err != nil {
		return "", fmt.Errorf("parse notice template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render notice template: %w", err)
	}
	return buf.String(), nil
}

func formatCurrencyGBP(cents int64) string {
	return fmt.Sprintf("£%.2f", float64(cents)/100)
}
