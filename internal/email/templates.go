package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

const subjectQuoteSummary = "Your solar installation estimate"

// QuoteEmailData carries the rendered figures for the quote summary email.
type QuoteEmailData struct {
	Name               string
	SystemSizeKwp      float64
	PanelCount         int
	PriceLow           string
	PriceHigh          string
	AnnualGeneration   int
	TotalAnnualBenefit string
	PaybackYears       string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func formatCurrencyGBP(amount int) string {
	return fmt.Sprintf("£%d", amount)
}
