package api

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/avelar/wordflash/internal/audio"
	"github.com/avelar/wordflash/internal/errors"
	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/services"
)

type Server struct {
	DB              *sql.DB
	DeckService     services.DeckService
	SessionService  services.SessionService
	ProgressService services.ProgressService
	StatsService    services.StatsService
	GroupService    services.GroupService
	ImportService   services.ImportService
	AudioService    *audio.Service
}

// writeJSON serializes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Default().Error("failed to encode response: %v", err)
	}
}

// decodeJSON reads the request body into v, returning a bad-request
// AppError on malformed input.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.NewBadRequestError("invalid request body: " + err.Error())
	}
	return nil
}
