package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/sevenmenu/gateway/internal/money"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(
	template.New("").Funcs(template.FuncMap{
		"brl":    money.FormatBRL,
		"amount": money.FormatAmount,
		"deref": func(d *decimal.Decimal) decimal.Decimal {
			if d == nil {
				return decimal.Zero
			}
			return *d
		},
	}).ParseFS(templateFS, "templates/*.html"),
)

func render(w http.ResponseWriter, log *logrus.Entry, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		log.WithError(err).WithField("template", name).Error("render failed")
	}
}
