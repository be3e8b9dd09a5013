// Package web renders the server-side catalog page.
package web

import (
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/httpx"

	"go.uber.org/zap"
)

const (
	msgMissingFields = "Error: must include title and author"
	msgInvalidDate   = "Error: Invalid date for Published At. Must be in YYYY-MM-DD format."
	msgServerError   = "Error: could not reach the catalog, try again later."
	dateLayout       = "2006-01-02"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageTmpl = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"published": publishedDate,
}).ParseFS(templateFS, "templates/index.html"))

func publishedDate(b book.Book) string {
	t, ok := b.Published()
	if !ok {
		return ""
	}
	return t.Format(dateLayout)
}

type formValues struct {
	Title       string
	Author      string
	CoverPhoto  string
	PublishedAt string
	Format      book.Format
}

type page struct {
	Alert   string
	Added   string
	Search  string
	Form    formValues
	Formats []book.Format
	Books   []book.Book
	// DefaultFormat is pre-checked when the form carries no format.
	DefaultFormat book.Format
}

type Handler struct {
	catalog book.Catalog
	logger  *zap.Logger
}

func NewHandler(catalog book.Catalog, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{catalog: catalog, logger: logger}
}

// Register mounts the page, the form target and the stylesheet.
func (h *Handler) Register(mux *http.ServeMux) {
	static, _ := fs.Sub(staticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("POST /ui/books", h.Create)
}

// Index handles GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	p := page{
		Added:  r.URL.Query().Get("added"),
		Search: book.TruncateSearch(r.URL.Query().Get("search")),
	}
	h.render(w, r, http.StatusOK, p)
}

// Create handles POST /ui/books
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, page{Alert: "Error: " + err.Error()})
		return
	}
	form := formValues{
		Title:       strings.TrimSpace(r.PostForm.Get("title")),
		Author:      strings.TrimSpace(r.PostForm.Get("author")),
		CoverPhoto:  strings.TrimSpace(r.PostForm.Get("coverPhoto")),
		PublishedAt: strings.TrimSpace(r.PostForm.Get("publishedAt")),
		Format:      book.Format(r.PostForm.Get("format")),
	}
	if !form.Format.Valid() {
		form.Format = ""
	}

	if form.Title == "" || form.Author == "" {
		h.render(w, r, http.StatusBadRequest, page{Alert: msgMissingFields, Form: form})
		return
	}
	if form.PublishedAt != "" {
		if _, err := time.Parse(dateLayout, form.PublishedAt); err != nil {
			h.render(w, r, http.StatusBadRequest, page{Alert: msgInvalidDate, Form: form})
			return
		}
	}

	b, err := h.catalog.Add(r.Context(), book.AddInput{
		Title:       form.Title,
		Author:      form.Author,
		Format:      form.Format,
		CoverPhoto:  form.CoverPhoto,
		PublishedAt: form.PublishedAt,
	})
	switch {
	case err == nil:
	case errors.Is(err, book.ErrInvalidInput):
		h.render(w, r, http.StatusBadRequest, page{Alert: "Error: " + err.Error(), Form: form})
		return
	default:
		h.logger.Error("add book from form",
			zap.String("request_id", httpx.RequestIDFrom(r)),
			zap.Error(err),
		)
		h.render(w, r, http.StatusInternalServerError, page{Alert: msgServerError, Form: form})
		return
	}

	http.Redirect(w, r, "/?added="+url.QueryEscape(b.Title), http.StatusSeeOther)
}

// render fills in the book list and writes the page. A failed lookup is
// shown as an alert rather than failing the whole page.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, p page) {
	p.Formats = book.Formats
	p.DefaultFormat = book.FormatPrint

	books, err := h.catalog.List(r.Context(), book.Query{Limit: book.DefaultLimit, Search: p.Search})
	if err != nil {
		h.logger.Error("list books for page",
			zap.String("request_id", httpx.RequestIDFrom(r)),
			zap.Error(err),
		)
		if p.Alert == "" {
			p.Alert = msgServerError
		}
		if status < http.StatusBadRequest {
			status = http.StatusInternalServerError
		}
	}
	p.Books = books

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTmpl.Execute(w, p); err != nil {
		h.logger.Error("render page", zap.Error(err))
	}
}
