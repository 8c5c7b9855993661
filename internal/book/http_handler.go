package book

import (
	"net/http"
	"strconv"

	"olreader/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

var errorRules = []httpx.ErrorRule{
	{Err: ErrNotFound, Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "Book not found"},
	{Err: ErrInvalidCursor, Status: http.StatusBadRequest, Code: "INVALID_CURSOR", Message: "Invalid cursor"},
}

type resolveRequest struct {
	ExternalID string `json:"external_id" validate:"required,olid"`
}

// Resolve handles POST /v1/books. It answers 201 when the book was fetched
// and stored, 200 when it already existed.
func (h *HTTPHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_JSON", "Request body must be a JSON object", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.WriteValidation(w, r, details)
		return
	}

	b, created, err := h.service.Resolve(r.Context(), req.ExternalID)
	if err != nil {
		httpx.WriteError(w, r, err, errorRules...)
		return
	}
	if created {
		httpx.JSONCreated(w, r, b)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Get handles GET /v1/books/{external_id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Get(r.Context(), r.PathValue("external_id"))
	if err != nil {
		httpx.WriteError(w, r, err, errorRules...)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// GetByISBN handles GET /v1/books/isbn/{isbn}
func (h *HTTPHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.GetByISBN(r.Context(), r.PathValue("isbn"))
	if err != nil {
		httpx.WriteError(w, r, err, errorRules...)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// List handles GET /v1/books?limit=&cursor=
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))

	page, err := h.service.List(r.Context(), limit, query.Get("cursor"))
	if err != nil {
		httpx.WriteError(w, r, err, errorRules...)
		return
	}

	meta := map[string]any{"count": len(page.Items)}
	if page.NextCursor != "" {
		meta["next_cursor"] = page.NextCursor
	}
	httpx.JSONSuccess(w, r, page.Items, meta)
}
