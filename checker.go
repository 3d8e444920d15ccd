package oifits

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/go-sif/oifits/config"
	"github.com/go-sif/oifits/logging"
	"github.com/hashicorp/go-multierror"
)

// Checker accumulates rule violations while tables are walked. It never
// fails: callers inspect the violations once a validation pass is over.
type Checker struct {
	inspectRules bool
	minSeverity  Severity
	disabled     map[string]bool
	violations   []Violation
	log          *slog.Logger
}

// CheckerOption customizes a Checker
type CheckerOption func(*Checker)

// WithInspectRules enables the "inspect all rules" mode
func WithInspectRules(inspect bool) CheckerOption {
	return func(c *Checker) { c.inspectRules = inspect }
}

// WithMinSeverity drops violations below s
func WithMinSeverity(s Severity) CheckerOption {
	return func(c *Checker) { c.minSeverity = s }
}

// WithDisabledRules never records violations of the given rule identifiers
func WithDisabledRules(ids ...string) CheckerOption {
	return func(c *Checker) {
		for _, id := range ids {
			c.disabled[id] = true
		}
	}
}

// WithCheckerLogger sets the logger receiving one debug message per violation
func WithCheckerLogger(l *slog.Logger) CheckerOption {
	return func(c *Checker) { c.log = l }
}

// WithConfig applies a checker configuration
func WithConfig(conf config.Checker) CheckerOption {
	return func(c *Checker) {
		c.inspectRules = conf.InspectRules
		if s, err := ParseSeverity(conf.MinSeverity); err == nil {
			c.minSeverity = s
		} else {
			c.log.Warn("ignoring minimum severity", "error", err)
		}
		for _, id := range conf.DisabledRules {
			c.disabled[id] = true
		}
	}
}

// NewChecker is a factory for Checkers
func NewChecker(opts ...CheckerOption) *Checker {
	c := &Checker{
		disabled: make(map[string]bool),
		log:      logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InspectRules returns true iff the "inspect all rules" mode is enabled
func (c *Checker) InspectRules() bool {
	return c.inspectRules
}

// RuleFailed records a violation of rule by a member of owner. A nil owner attributes the violation to the whole container.
func (c *Checker) RuleFailed(rule Rule, owner OITable, member string, message string) {
	ext := "FILE"
	if owner != nil {
		ext = owner.Base().String()
	}
	c.Report(Violation{Rule: rule, Severity: rule.Severity, Extension: ext, Member: member, Message: message})
}

// Report records a violation unless its rule is disabled or its severity is below the configured floor
func (c *Checker) Report(v Violation) {
	if c.disabled[v.Rule.ID] || v.Severity < c.minSeverity {
		return
	}
	c.log.Debug("rule failed", "rule", v.Rule.ID, "extension", v.Extension, "member", v.Member)
	c.violations = append(c.violations, v)
}

// Violations returns every recorded violation in order
func (c *Checker) Violations() []Violation {
	return c.violations
}

// ViolationsOf returns the recorded violations of a rule
func (c *Checker) ViolationsOf(rule Rule) []Violation {
	var res []Violation
	for _, v := range c.violations {
		if v.Rule.ID == rule.ID {
			res = append(res, v)
		}
	}
	return res
}

// Count returns the number of violations with the given severity
func (c *Checker) Count(s Severity) int {
	n := 0
	for _, v := range c.violations {
		if v.Severity == s {
			n++
		}
	}
	return n
}

// HasSevere returns true iff at least one severe violation was recorded
func (c *Checker) HasSevere() bool {
	return c.Count(SeveritySevere) != 0
}

// Err merges the severe violations into one error, or returns nil
func (c *Checker) Err() error {
	var multierr *multierror.Error
	for _, v := range c.violations {
		if v.Severity == SeveritySevere {
			multierr = multierror.Append(multierr, v)
		}
	}
	return multierr.ErrorOrNil()
}

// Reset forgets every recorded violation
func (c *Checker) Reset() {
	c.violations = nil
}

// WriteReport writes one line per violation followed by a summary line
func (c *Checker) WriteReport(w io.Writer) error {
	for _, v := range c.violations {
		if _, err := fmt.Fprintln(w, v.Error()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d severe, %d warning, %d info\n",
		c.Count(SeveritySevere), c.Count(SeverityWarning), c.Count(SeverityInfo))
	return err
}
