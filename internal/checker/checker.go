package checker

import (
	"context"
	"errors"
	"net"
	"os"
	"time"

	"portcheck/internal/logger"
	"portcheck/internal/models"
)

// Dialer opens outbound connections. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Checker performs single TCP connection attempts and classifies them.
type Checker struct {
	dialer Dialer
	now    func() time.Time
}

// New returns a checker using the given dialer, or a plain net.Dialer when nil.
func New(dialer Dialer) *Checker {
	if dialer == nil {
		dialer = &net.Dialer{}
	}
	return &Checker{
		dialer: dialer,
		now:    time.Now,
	}
}

// CheckPort runs one blocking check with a fresh default checker.
func CheckPort(host string, port int, timeout time.Duration) (models.CheckResult, error) {
	return New(nil).Check(context.Background(), models.Target{
		Host:    host,
		Port:    port,
		Timeout: timeout,
	})
}

// Check makes exactly one IPv4 TCP connection attempt to target, bounded by
// target.Timeout or an earlier cancellation of ctx. The returned error is
// only set when the target itself is invalid; network failures are reported
// through the result outcome.
func (c *Checker) Check(ctx context.Context, target models.Target) (models.CheckResult, error) {
	if err := target.Validate(); err != nil {
		return models.CheckResult{}, err
	}

	l := logger.WithComponent("checker")

	dialCtx, cancel := context.WithTimeout(ctx, target.Timeout)
	defer cancel()

	started := c.now()
	conn, err := c.dialer.DialContext(dialCtx, "tcp4", target.Address())
	if conn != nil {
		defer conn.Close()
	}

	result := models.CheckResult{
		Host:      target.Host,
		Port:      target.Port,
		TimeoutMs: target.Timeout.Milliseconds(),
		LatencyMs: c.now().Sub(started).Milliseconds(),
		CheckedAt: c.now().UTC(),
	}

	if err != nil {
		result.Outcome = Classify(err)
		result.Detail = err.Error()
		if result.Outcome == models.OutcomeTimedOut {
			result.Detail = "no response within " + target.Timeout.String()
		}
	} else {
		result.Outcome = models.OutcomeOpen
	}

	l.Debug().
		Str("host", result.Host).
		Int("port", result.Port).
		Str("outcome", string(result.Outcome)).
		Int64("latency_ms", result.LatencyMs).
		Str("detail", result.Detail).
		Msg("port check finished")

	return result, nil
}

// Classify maps a dial error onto an outcome.
func Classify(err error) models.Outcome {
	if err == nil {
		return models.OutcomeOpen
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return models.OutcomeError
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return models.OutcomeTimedOut
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return models.OutcomeTimedOut
	}

	// Refused, unreachable, reset and friends all surface as a syscall
	// error from connect(2).
	var sysErr *os.SyscallError
	if errors.As(err, &sysErr) {
		return models.OutcomeClosed
	}

	return models.OutcomeError
}
