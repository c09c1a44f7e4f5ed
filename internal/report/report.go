package report

import (
	"fmt"
	"io"
	"strings"

	"portcheck/internal/models"
)

const ruleWidth = 50

// Console writes the human-readable check report.
type Console struct {
	w io.Writer
}

// NewConsole creates a console report writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Header prints the banner, the target echo and the progress notice.
func (c *Console) Header(target models.Target) {
	c.rule("=")
	c.line("🔌 PORT CHECKER")
	c.rule("=")
	c.line(fmt.Sprintf("📍 Host: %s", target.Host))
	c.line(fmt.Sprintf("🚪 Port: %d", target.Port))
	c.rule("-")
	c.line("🔄 Checking connection...")
	c.line("")
}

// Result prints the diagnostic line (if any) followed by the verdict.
func (c *Console) Result(res models.CheckResult) {
	switch res.Outcome {
	case models.OutcomeTimedOut:
		c.line(fmt.Sprintf("⏱️  Timed out (%s)", res.Target().Timeout))
	case models.OutcomeError:
		c.line(fmt.Sprintf("❌ Connection error: %s", res.Detail))
	}

	if res.Open() {
		c.line(fmt.Sprintf("✅ RESULT: port %d is OPEN", res.Port))
		c.line(fmt.Sprintf("   (a server is listening on %s)", res.Host))
	} else {
		c.line(fmt.Sprintf("❌ RESULT: port %d is CLOSED", res.Port))
		c.line(fmt.Sprintf("   (nothing is accepting connections on %s)", res.Host))
	}

	c.line("")
	c.rule("=")
}

func (c *Console) rule(ch string) {
	c.line(strings.Repeat(ch, ruleWidth))
}

func (c *Console) line(s string) {
	_, _ = fmt.Fprintln(c.w, s)
}
