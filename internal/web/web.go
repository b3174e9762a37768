// Package web serves the page a share link opens, plus text and CSV exports
// of the same token.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/mmynk/secretsanta/internal/export"
	"github.com/mmynk/secretsanta/internal/metrics"
	"github.com/mmynk/secretsanta/internal/models"
	"github.com/mmynk/secretsanta/internal/sharecode"
)

//go:embed templates/page.html
var templates embed.FS

// Handler renders share links.
type Handler struct {
	baseURL string
	metrics *metrics.Metrics
	page    *template.Template
}

type pageData struct {
	Record    *models.EventRecord
	Date      string
	Token     string
	Shared    bool
	ShareLink string
	Invalid   bool
}

// New creates a Handler. Re-share links point at baseURL. m may be nil.
func New(baseURL string, m *metrics.Metrics) (*Handler, error) {
	page, err := template.ParseFS(templates, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Handler{baseURL: baseURL, metrics: m, page: page}, nil
}

// Register mounts the page and export routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.serveResult)
	mux.HandleFunc("GET /export.txt", h.serveText)
	mux.HandleFunc("GET /export.csv", h.serveCSV)
}

// serveResult shows the decoded result, or the landing page when there is
// no usable token. It never answers with an error status for a bad token.
func (h *Handler) serveResult(w http.ResponseWriter, r *http.Request) {
	data := pageData{}

	payload, ok, err := sharecode.FromQuery(r.URL.Query())
	if err != nil {
		h.metrics.ObserveDecodeFailure()
		slog.Warn("Share link rejected", "error", err)
		data.Invalid = true
	}
	if ok {
		record := payload.Results
		data.Record = &record
		data.Date = export.FormatDate(record.Date)
		data.Token = r.URL.Query().Get(sharecode.QueryParam)
		data.Shared = payload.Shared
		data.ShareLink = h.shareLink(record)
	}

	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		slog.Error("Failed to render page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

// shareLink builds the recipient link for record, or "" if it cannot.
func (h *Handler) shareLink(record models.EventRecord) string {
	token, err := sharecode.Encode(record, true)
	if err != nil {
		slog.Error("Failed to encode share token", "error", err)
		return ""
	}
	link, err := sharecode.Link(h.baseURL, token)
	if err != nil {
		slog.Error("Failed to build share link", "base_url", h.baseURL, "error", err)
		return ""
	}
	return link
}

func (h *Handler) serveText(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.exportPayload(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="secret-santa.txt"`)
	fmt.Fprint(w, export.Text(payload.Results))
}

func (h *Handler) serveCSV(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.exportPayload(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="secret-santa.csv"`)
	if err := export.WriteCSV(w, payload.Results); err != nil {
		slog.Error("Failed to write CSV export", "error", err)
	}
}

// exportPayload decodes the token for an export, writing a 400 if there is
// none or it is invalid.
func (h *Handler) exportPayload(w http.ResponseWriter, r *http.Request) (sharecode.Payload, bool) {
	payload, ok, err := sharecode.FromQuery(r.URL.Query())
	if err != nil {
		h.metrics.ObserveDecodeFailure()
		slog.Warn("Export token rejected", "path", r.URL.Path, "error", err)
		http.Error(w, sharecode.ErrDecode.Error(), http.StatusBadRequest)
		return sharecode.Payload{}, false
	}
	if !ok {
		http.Error(w, "missing "+sharecode.QueryParam+" parameter", http.StatusBadRequest)
		return sharecode.Payload{}, false
	}
	return payload, true
}
