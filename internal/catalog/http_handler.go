package catalog

import (
	"net/http"
	"strconv"

	"olreader/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// Search handles GET /v1/search
// @Summary Search the Open Library catalog
// @Tags catalog
// @Produce json
// @Param q query string true "Search term"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 503 {object} httpx.ErrorResponse
// @Router /v1/search [get]
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}

	res, err := h.svc.Search(r.Context(), query.Get("q"), page)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	httpx.JSONSuccess(w, r, res.Items, map[string]any{
		"page":     page,
		"total":    res.Total,
		"returned": res.Returned,
	})
}

// SearchByISBN handles GET /v1/search/isbn/{isbn}
// @Summary Look up a single catalog record by ISBN
// @Tags catalog
// @Produce json
// @Param isbn path string true "ISBN-10 or ISBN-13"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/search/isbn/{isbn} [get]
func (h *HTTPHandler) SearchByISBN(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.SearchByISBN(r.Context(), r.PathValue("isbn"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Detail handles GET /v1/works/{id}
// @Summary Fetch a work or edition with resolved authors and cover
// @Tags catalog
// @Produce json
// @Param id path string true "Work or edition id, e.g. OL9242915W"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /v1/works/{id} [get]
func (h *HTTPHandler) Detail(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Detail(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, d, map[string]any{"kind": d.Kind.String()})
}

// Availability handles GET /v1/works/{id}/availability
// @Summary Lending availability for a work or edition
// @Tags catalog
// @Produce json
// @Param id path string true "Work or edition id"
// @Success 200 {object} httpx.SuccessResponse
// @Router /v1/works/{id}/availability [get]
func (h *HTTPHandler) Availability(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.Availability(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, a, nil)
}

// Author handles GET /v1/authors/{id}
func (h *HTTPHandler) Author(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.Author(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, a, nil)
}

// Trending handles GET /v1/trending
// @Summary Trending works
// @Tags catalog
// @Produce json
// @Param category query string false "recent, new or popular" default(recent)
// @Param minimum query int false "Minimum reading-log count" default(4)
// @Param limit query int false "Maximum entries" default(12)
// @Success 200 {object} httpx.SuccessResponse
// @Router /v1/trending [get]
func (h *HTTPHandler) Trending(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	minimum, _ := strconv.Atoi(query.Get("minimum"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	entries, err := h.svc.Trending(r.Context(), query.Get("category"), minimum, limit)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, entries, map[string]any{"count": len(entries)})
}

// Cover handles GET /v1/covers/{id}?size=S|M|L by redirecting to the image.
func (h *HTTPHandler) Cover(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.CoverURL(r.PathValue("id"), r.URL.Query().Get("size"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.Redirect(w, r, u, http.StatusFound)
}
