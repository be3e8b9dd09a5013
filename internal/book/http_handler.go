package book

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"bookcatalog/internal/httpx"

	"go.uber.org/zap"
)

// Catalog is the part of Service the handlers depend on.
type Catalog interface {
	List(ctx context.Context, q Query) ([]Book, error)
	Add(ctx context.Context, in AddInput) (Book, error)
}

type HTTPHandler struct {
	service Catalog
	logger  *zap.Logger
}

func NewHTTPHandler(service Catalog, logger *zap.Logger) *HTTPHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPHandler{service: service, logger: logger}
}

// Register mounts the book routes on mux under /book.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /book", h.List)
	mux.HandleFunc("GET /book/{$}", h.List)
	mux.HandleFunc("POST /book/add", h.Add)
}

// ListResponse is the body of GET /book.
type ListResponse struct {
	Books []Book `json:"books"`
}

// AddRequest is the body of POST /book/add.
type AddRequest struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Format      string `json:"format,omitempty" validate:"omitempty,oneof=PRINT AUDIO"`
	PublishedAt string `json:"publishedAt,omitempty"`
	CoverPhoto  string `json:"coverPhoto,omitempty"`
}

// List handles GET /book
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	q := Query{Limit: DefaultLimit, Search: query.Get("search")}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			httpx.Error(w, http.StatusBadRequest, "querystring/limit must be integer")
			return
		}
		if limit < 1 {
			httpx.Error(w, http.StatusBadRequest, "querystring/limit must be >= 1")
			return
		}
		q.Limit = limit
	}

	books, err := h.service.List(r.Context(), q)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ListResponse{Books: books})
}

// Add handles POST /book/add
func (h *HTTPHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		var de *httpx.DecodeError
		if errors.As(err, &de) {
			httpx.Error(w, de.Status, de.Message)
			return
		}
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if verrs := httpx.ValidateStruct(req); len(verrs) > 0 {
		httpx.Error(w, http.StatusBadRequest, httpx.JoinValidation(verrs))
		return
	}

	b, err := h.service.Add(r.Context(), AddInput{
		Title:       req.Title,
		Author:      req.Author,
		Format:      Format(req.Format),
		CoverPhoto:  req.CoverPhoto,
		PublishedAt: req.PublishedAt,
	})
	switch {
	case err == nil:
		httpx.JSON(w, http.StatusOK, b)
	case errors.Is(err, ErrInvalidInput):
		httpx.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrConflict):
		httpx.Error(w, http.StatusConflict, "Book already exists")
	default:
		h.internalError(w, r, err)
	}
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("book request failed",
		zap.String("request_id", httpx.RequestIDFrom(r)),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	httpx.Error(w, http.StatusInternalServerError, "Internal Server Error")
}
