package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSuccess_IncludesRequestID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(ContextWithRequestID(r.Context(), "req-1"))
	w := httptest.NewRecorder()

	JSONSuccess(w, r, map[string]string{"title": "Watchmen"}, map[string]any{"page": 1})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
		Meta    map[string]any    `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Watchmen", body.Data["title"])
	assert.Equal(t, "req-1", body.Meta["request_id"])
	assert.EqualValues(t, 1, body.Meta["page"])
}

func TestJSONSuccess_NoMeta(t *testing.T) {
	w := httptest.NewRecorder()
	JSONSuccess(w, httptest.NewRequest(http.MethodGet, "/", nil), []int{1}, nil)

	assert.NotContains(t, w.Body.String(), "meta")
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	JSONError(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input",
		[]ErrorDetail{{Field: "q", Message: "q is required"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	require.Len(t, body.Error.Details, 1)
	assert.Equal(t, "q", body.Error.Details[0].Field)
}

func TestJSONCreated(t *testing.T) {
	w := httptest.NewRecorder()
	JSONCreated(w, httptest.NewRequest(http.MethodPost, "/", nil), map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		ExternalID string `json:"external_id"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"external_id":"OL1M"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "OL1M", dst.ExternalID)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"external_id":"OL1M","extra":true}`))
	assert.Error(t, DecodeJSON(r, &dst))
}
