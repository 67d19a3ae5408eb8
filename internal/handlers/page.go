package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/NaiduBagana/cam2cart/internal/state"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type pageData struct {
	View     state.View
	Currency string
}

// Page renders the receipt, or the loading screen until the first load ends.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	name := "loading.html"
	data := pageData{Currency: "₹"}
	if v, ok := h.Views.Current(); ok {
		name = "receipt.html"
		data.View = v
	}

	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		h.Logger.Errorw("error rendering page", "template", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
