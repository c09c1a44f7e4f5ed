package models

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTarget is wrapped by every validation failure of a Target.
var ErrInvalidTarget = errors.New("invalid target")

// Target defines the single host/port pair to probe.
type Target struct {
	Host    string
	Port    int
	Timeout time.Duration
}

// Validate reports whether the target can be dialled.
func (t Target) Validate() error {
	if strings.TrimSpace(t.Host) == "" {
		return fmt.Errorf("%w: host must not be empty", ErrInvalidTarget)
	}
	if t.Port < 1 || t.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range 1-65535", ErrInvalidTarget, t.Port)
	}
	if t.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidTarget, t.Timeout)
	}
	return nil
}

// Address returns the dialable host:port form.
func (t Target) Address() string {
	return net.JoinHostPort(strings.TrimSpace(t.Host), strconv.Itoa(t.Port))
}

// Outcome classifies a single connection attempt.
type Outcome string

const (
	OutcomeOpen     Outcome = "open"
	OutcomeClosed   Outcome = "closed"
	OutcomeTimedOut Outcome = "timed_out"
	OutcomeError    Outcome = "error"
)

// CheckResult captures the outcome of a single port check.
type CheckResult struct {
	Host      string    `json:"host"`
	Port      int       `json:"port"`
	TimeoutMs int64     `json:"timeout_ms"`
	Outcome   Outcome   `json:"outcome"`
	Detail    string    `json:"detail,omitempty"`
	LatencyMs int64     `json:"latency_ms"`
	CheckedAt time.Time `json:"checked_at"`
}

// Open collapses the outcome into the open/closed verdict shown to users.
func (r CheckResult) Open() bool {
	return r.Outcome == OutcomeOpen
}

// Target rebuilds the probed target from the result.
func (r CheckResult) Target() Target {
	return Target{
		Host:    r.Host,
		Port:    r.Port,
		Timeout: time.Duration(r.TimeoutMs) * time.Millisecond,
	}
}
