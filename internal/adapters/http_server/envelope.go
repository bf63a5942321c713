package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/lvapl/StayFinder/internal/domain"
)

// envelope is the uniform response shape. The front-end branches on whether
// errors is empty, so it is always present and never null.
type envelope struct {
	Errors   []string       `json:"errors"`
	Data     any            `json:"data"`
	Metadata any            `json:"metadata,omitempty"`
	Paging   *domain.Paging `json:"paging,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, e envelope) {
	if e.Errors == nil {
		e.Errors = []string{}
	}
	if e.Data == nil {
		e.Data = struct{}{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(e); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Data: data})
}

func writeErrors(w http.ResponseWriter, status int, msgs ...string) {
	writeJSON(w, status, envelope{Errors: msgs})
}
