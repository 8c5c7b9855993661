package httpx

import (
	"errors"
	"net/http"
	"slices"

	"github.com/rs/zerolog/log"

	"olreader/internal/platform/openlibrary"
)

// ErrorRule maps an error matched with errors.Is onto a response.
type ErrorRule struct {
	Err     error
	Status  int
	Code    string
	Message string
}

var upstreamRules = []ErrorRule{
	{Err: openlibrary.ErrValidation, Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: "Invalid input"},
	{Err: openlibrary.ErrRecordNotFound, Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "Record not found"},
	{Err: openlibrary.ErrUpstreamMalformed, Status: http.StatusBadGateway, Code: "UPSTREAM_MALFORMED", Message: "Catalog returned an unexpected response"},
	{Err: openlibrary.ErrUpstreamUnavailable, Status: http.StatusServiceUnavailable, Code: "UPSTREAM_UNAVAILABLE", Message: "Catalog is unavailable"},
}

// WriteError writes the response for err. Caller rules are checked before the
// catalog error kinds; anything unmatched is a 500. Validation failures carry
// their cause as the message.
func WriteError(w http.ResponseWriter, r *http.Request, err error, rules ...ErrorRule) {
	for _, rule := range slices.Concat(rules, upstreamRules) {
		if !errors.Is(err, rule.Err) {
			continue
		}
		msg := rule.Message
		if rule.Status == http.StatusBadRequest {
			var olErr *openlibrary.Error
			if errors.As(err, &olErr) && olErr.Err != nil {
				msg = olErr.Err.Error()
			}
		}
		if rule.Status >= http.StatusInternalServerError {
			log.Error().Err(err).Str("request_id", RequestIDFrom(r)).Str("code", rule.Code).Msg("request failed")
		}
		JSONError(w, r, rule.Status, rule.Code, msg, nil)
		return
	}

	log.Error().Err(err).Str("request_id", RequestIDFrom(r)).Msg("unhandled error")
	JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}

// WriteValidation writes a 400 with field details.
func WriteValidation(w http.ResponseWriter, r *http.Request, details []ErrorDetail) {
	JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
}
