package api

import (
	"errors"
	"net/http"
	"strings"

	service "github.com/okian/smurfwatch/internal/app"
)

const lookupPrefix = "/lookup/"

// LookupHandler checks a single identifier.
type LookupHandler struct {
	factory CheckerFactory
}

// NewLookupHandler creates a new lookup handler.
func NewLookupHandler(factory CheckerFactory) *LookupHandler {
	return &LookupHandler{factory: factory}
}

// HandleLookup handles GET /lookup/{Nick#Tag}. The '#' must be sent as %23.
// Row-level failures are reported inside the row with status 200.
func (h *LookupHandler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	const op = "api.lookup"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	raw := strings.TrimPrefix(r.URL.Path, lookupPrefix)
	if strings.TrimSpace(raw) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing Riot ID")))
		return
	}
	params, err := paramsFrom(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	checker, err := h.factory(params)
	if err != nil {
		if errors.Is(err, service.ErrMissingAPIKey) {
			writeError(w, http.StatusUnauthorized, "missing_api_key", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", nil)
		return
	}
	row := checker.CheckRow(r.Context(), raw)
	row.Row = 1
	writeJSON(w, http.StatusOK, row)
}
