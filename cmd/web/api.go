package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"finitefield.org/marketing-web/internal/analytics"
	handlersPkg "finitefield.org/marketing-web/internal/handlers"
	mw "finitefield.org/marketing-web/internal/middleware"
	"finitefield.org/marketing-web/internal/observability"
)

const maxJSONBytes = 16 << 10

type apiError struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type eventRequest struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params"`
}

// EventsHandler accepts browser beacons and forwards them to the tracker.
// Sink failures are logged by the tracker and do not fail the beacon.
func (a *App) EventsHandler(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid JSON body"})
		return
	}
	if !analytics.ValidEventName(req.Name) {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid event name"})
		return
	}
	err := a.tracker.TrackEvent(r.Context(), analytics.Event{
		Name:     req.Name,
		Params:   req.Params,
		ClientID: mw.GetSession(r).ID,
	})
	if err != nil && !errors.Is(err, analytics.ErrInvalidEventName) {
		observability.FromContext(r.Context()).Debug("event delivery incomplete", zap.String("event", req.Name), zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

type consentRequest struct {
	Consent string `json:"consent"`
}

// ConsentHandler records the visitor's cookie consent choice in the session.
func (a *App) ConsentHandler(w http.ResponseWriter, r *http.Request) {
	var req consentRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid JSON body"})
		return
	}
	switch req.Consent {
	case handlersPkg.ConsentAccepted, handlersPkg.ConsentDeclined:
	default:
		writeJSON(w, http.StatusBadRequest, apiError{Error: "consent must be accepted or declined"})
		return
	}
	s := mw.GetSession(r)
	if s.Consent != req.Consent {
		s.Consent = req.Consent
		s.MarkDirty()
	}
	w.WriteHeader(http.StatusNoContent)
}
