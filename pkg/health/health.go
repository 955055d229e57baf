// Package health serves liveness and readiness probes.
//
// Readiness checks run on demand, each bounded by its own timeout. The
// service is ready only after SetReady(true) and while every check passes.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-faster/errors"
)

type CheckFunc func(ctx context.Context) error

type check struct {
	name    string
	timeout time.Duration
	fn      CheckFunc
}

type Health struct {
	ready atomic.Bool

	mu     sync.RWMutex
	checks []check
}

func New() *Health {
	return &Health{}
}

func (h *Health) AddReadinessCheck(name string, timeout time.Duration, fn CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks = append(h.checks, check{name: name, timeout: timeout, fn: fn})
}

// SetReady is called with true once startup completes and with false when
// shutdown begins.
func (h *Health) SetReady(ready bool) {
	h.ready.Store(ready)
}

// Check runs every readiness check and returns the failures by name.
func (h *Health) Check(ctx context.Context) map[string]string {
	h.mu.RLock()
	checks := h.checks
	h.mu.RUnlock()

	failures := make(map[string]string)
	if !h.ready.Load() {
		failures["service"] = "not ready"
	}

	var (
		wg  sync.WaitGroup
		fmu sync.Mutex
	)
	for _, c := range checks {
		wg.Add(1)
		go func(c check) {
			defer wg.Done()
			checkCtx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()

			if err := c.fn(checkCtx); err != nil {
				fmu.Lock()
				failures[c.name] = err.Error()
				fmu.Unlock()
			}
		}(c)
	}
	wg.Wait()

	return failures
}

type response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// LiveEndpoint reports that the process is serving requests.
func (h *Health) LiveEndpoint(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, response{Status: "ok"})
}

func (h *Health) ReadyEndpoint(w http.ResponseWriter, r *http.Request) {
	failures := h.Check(r.Context())
	if len(failures) > 0 {
		writeJSON(w, http.StatusServiceUnavailable, response{Status: "unavailable", Checks: failures})
		return
	}
	writeJSON(w, http.StatusOK, response{Status: "ok"})
}

// PingCheck adapts a PingContext method, such as that of *sql.DB.
func PingCheck(p interface{ PingContext(context.Context) error }) CheckFunc {
	return func(ctx context.Context) error {
		if err := p.PingContext(ctx); err != nil {
			return errors.Wrap(err, "ping")
		}
		return nil
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
