// CLAUDE:SUMMARY Chi HTTP surface: one read-only endpoint per derivation plus tracked-query CRUD glue.
package vigie

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hazyhaar/vigie/kit"
)

// RegisterHTTP mounts the vigie endpoints on a chi router. The caller is
// expected to have installed auth middleware upstream; the tenant is always
// taken from the request context, never from the request itself.
func (s *Service) RegisterHTTP(r chi.Router) {
	r.Group(func(r chi.Router) {
		// Pin one logical "now" per request, before any storage read.
		r.Use(s.pinNow)

		r.Route("/api/queries", func(r chi.Router) {
			r.Get("/", s.handleListQueries)
			r.Post("/", s.handleCreateQuery)
			r.Get("/{queryID}", s.handleGetQuery)
			r.Put("/{queryID}", s.handleUpdateQuery)
			r.Delete("/{queryID}", s.handleDeleteQuery)

			r.Post("/{queryID}/observations", s.handleAppendObservation)
			r.Get("/{queryID}/observations", s.handleListObservations)

			r.Get("/{queryID}/volatility", s.handleVolatility)
			r.Get("/{queryID}/volatility/attribution", s.handleAttribution)
			r.Get("/{queryID}/volatility/spikes", s.handleSpikes)
			r.Get("/{queryID}/volatility/transitions", s.handleTransitions)
			r.Get("/{queryID}/volatility/ai-stability", s.handleAIStability)
			r.Get("/{queryID}/volatility/momentum", s.handleMomentum)
		})

		r.Get("/api/volatility/risk", s.handleRisk)
		r.Get("/api/volatility/pressure", s.handlePressure)
	})
}

// pinNow captures the request clock once, so every window boundary derived
// downstream uses the same reading.
func (s *Service) pinNow(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := kit.WithNow(r.Context(), s.clock.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// --- Tracked query CRUD glue ---

func (s *Service) handleCreateQuery(w http.ResponseWriter, r *http.Request) {
	var q TrackedQuery
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, errBadBody)
		return
	}
	if err := s.CreateQuery(r.Context(), kit.GetTenantID(r.Context()), &q); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &q)
}

func (s *Service) handleListQueries(w http.ResponseWriter, r *http.Request) {
	queries, err := s.ListQueries(r.Context(), kit.GetTenantID(r.Context()))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if queries == nil {
		queries = []*TrackedQuery{}
	}
	writeJSON(w, http.StatusOK, queries)
}

func (s *Service) handleGetQuery(w http.ResponseWriter, r *http.Request) {
	q, err := s.GetQuery(r.Context(), kit.GetTenantID(r.Context()), chi.URLParam(r, "queryID"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Service) handleUpdateQuery(w http.ResponseWriter, r *http.Request) {
	var q TrackedQuery
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, errBadBody)
		return
	}
	q.ID = chi.URLParam(r, "queryID")
	if err := s.UpdateQuery(r.Context(), kit.GetTenantID(r.Context()), &q); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &q)
}

func (s *Service) handleDeleteQuery(w http.ResponseWriter, r *http.Request) {
	err := s.DeleteQuery(r.Context(), kit.GetTenantID(r.Context()), chi.URLParam(r, "queryID"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- Observation ingest glue ---

func (s *Service) handleAppendObservation(w http.ResponseWriter, r *http.Request) {
	var in struct {
		CapturedAt  int64           `json:"captured_at"`
		ValidAsOf   int64           `json:"valid_as_of"`
		RawPayload  json.RawMessage `json:"raw_payload"`
		AIPanel     string          `json:"ai_panel"`
		AIPanelText string          `json:"ai_panel_text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, errBadBody)
		return
	}
	o := &Observation{
		CapturedAt:  in.CapturedAt,
		ValidAsOf:   in.ValidAsOf,
		RawPayload:  in.RawPayload,
		AIPanel:     in.AIPanel,
		AIPanelText: in.AIPanelText,
	}
	err := s.AppendObservation(r.Context(), kit.GetTenantID(r.Context()), chi.URLParam(r, "queryID"), o)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (s *Service) handleListObservations(w http.ResponseWriter, r *http.Request) {
	days, err := queryIntStrict(r, "window")
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	views, err := s.Observations(r.Context(), kit.GetTenantID(r.Context()), chi.URLParam(r, "queryID"), days)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// --- Derivations ---

func (s *Service) handleVolatility(w http.ResponseWriter, r *http.Request) {
	days, err := queryIntStrict(r, "window")
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	report, err := s.Volatility(r.Context(), kit.GetTenantID(r.Context()), chi.URLParam(r, "queryID"), days)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Service) handleAttribution(w http.ResponseWriter, r *http.Request) {
	days, limit, err := windowAndLimit(r)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	report, err := s.Attribution(r.Context(), kit.GetTenantID(r.Context()), chi.URLParam(r, "queryID"), days, limit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Service) handleSpikes(w http.ResponseWriter, r *http.Request) {
	days, limit, err := windowAndLimit(r)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	report, err := s.Spikes(r.Context(), kit.GetTenantID(r.Context()), chi.URLParam(r, "queryID"), days, limit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Service) handleTransitions(w http.ResponseWriter, r *http.Request) {
	days, err := queryIntStrict(r, "window")
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	report, err := s.Transitions(r.Context(), kit.GetTenantID(r.Context()), chi.URLParam(r, "queryID"), days)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Service) handleAIStability(w http.ResponseWriter, r *http.Request) {
	days, err := queryIntStrict(r, "window")
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	report, err := s.AIStability(r.Context(), kit.GetTenantID(r.Context()), chi.URLParam(r, "queryID"), days)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Service) handleMomentum(w http.ResponseWriter, r *http.Request) {
	report, err := s.Momentum(r.Context(), kit.GetTenantID(r.Context()), chi.URLParam(r, "queryID"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Service) handleRisk(w http.ResponseWriter, r *http.Request) {
	days, err := queryIntStrict(r, "window")
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	report, err := s.RiskIndex(r.Context(), kit.GetTenantID(r.Context()), days)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Service) handlePressure(w http.ResponseWriter, r *http.Request) {
	days, limit, err := windowAndLimit(r)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	report, err := s.Pressure(r.Context(), kit.GetTenantID(r.Context()), days, limit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// --- Helpers ---

var errBadBody = errors.New("malformed JSON body")

// queryIntStrict parses an optional integer query parameter. Absent means 0;
// a non-integer value is an invalid-input error, never silently defaulted.
func queryIntStrict(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrInvalidInput
	}
	return v, nil
}

func windowAndLimit(r *http.Request) (days, limit int, err error) {
	if days, err = queryIntStrict(r, "window"); err != nil {
		return 0, 0, err
	}
	if limit, err = queryIntStrict(r, "limit"); err != nil {
		return 0, 0, err
	}
	return days, limit, nil
}

// writeServiceError maps service errors to HTTP. Internal faults are logged
// with detail but reported generically.
func (s *Service) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, ErrNotFound)
	case errors.Is(err, errBadBody):
		writeError(w, http.StatusBadRequest, err)
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
