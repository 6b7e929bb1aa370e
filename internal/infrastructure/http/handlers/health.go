package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// CheckFunc pings one dependency. A nil error means healthy.
type CheckFunc func(ctx context.Context) error

type namedCheck struct {
	name  string
	check CheckFunc
}

// HealthHandler serves /health by running the checks registered at startup,
// in registration order. With no checks it always reports ok.
type HealthHandler struct {
	checks []namedCheck
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// AddCheck registers a named dependency check. Returns the handler so main
// can chain registrations. Not safe to call once serving has started.
func (h *HealthHandler) AddCheck(name string, check CheckFunc) *HealthHandler {
	h.checks = append(h.checks, namedCheck{name: name, check: check})
	return h
}

type healthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks,omitempty"`
	Message string            `json:"message,omitempty"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := make(map[string]string, len(h.checks))
	allOK := true
	for _, c := range h.checks {
		if err := c.check(ctx); err != nil {
			checks[c.name] = "down: " + err.Error()
			allOK = false
		} else {
			checks[c.name] = "ok"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if !allOK {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(healthResponse{
			Status:  "unhealthy",
			Checks:  checks,
			Message: "one or more checks failed",
		})
		return
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(healthResponse{
		Status: "ok",
		Checks: checks,
	})
}
