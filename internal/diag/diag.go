// Package diag collects structured, non-fatal diagnostics produced while
// ingesting and fusing the knowledge-graph sources. Nothing in the load
// pipeline fails on bad data; it reports here and continues with degraded
// data instead.
package diag

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/langnav/internal/metrics"
)

// Kind classifies a diagnostic.
type Kind string

const (
	// MissingReference: a code points at an entity absent from its dictionary.
	MissingReference Kind = "missing_reference"
	// MalformedRow: an input row was skipped.
	MalformedRow Kind = "malformed_row"
	// FetchFailure: a whole source could not be read and is treated as absent.
	FetchFailure Kind = "fetch_failure"
	// DataQuality: the object was built, but with defaults or ignored values.
	DataQuality Kind = "data_quality"
)

func (k Kind) String() string { return string(k) }

// Diagnostic is one reported problem.
type Diagnostic struct {
	Kind    Kind
	Source  string
	Code    string
	Message string
}

// Sink receives diagnostics. Implementations must be safe for concurrent use.
type Sink interface {
	Report(d Diagnostic)
}

// Reportf formats and reports a diagnostic.
func Reportf(s Sink, kind Kind, source, code, format string, args ...any) {
	if s == nil {
		return
	}
	s.Report(Diagnostic{Kind: kind, Source: source, Code: code, Message: fmt.Sprintf(format, args...)})
}

// Discard drops every diagnostic.
var Discard Sink = discard{}

type discard struct{}

func (discard) Report(Diagnostic) {}

// Collector stores diagnostics in report order, logs them and counts them.
type Collector struct {
	runID   uuid.UUID
	log     *slog.Logger
	metrics *metrics.Metrics

	mu    sync.Mutex
	items []Diagnostic
	count map[Kind]int
}

// NewCollector creates a Collector for one load run. m may be nil.
func NewCollector(log *slog.Logger, m *metrics.Metrics) *Collector {
	if log == nil {
		log = slog.Default()
	}
	id := uuid.New()
	return &Collector{
		runID:   id,
		log:     log.With(slog.String("run_id", id.String())),
		metrics: m,
		count:   make(map[Kind]int),
	}
}

// RunID identifies the load run the diagnostics belong to.
func (c *Collector) RunID() uuid.UUID { return c.runID }

// Report implements Sink.
func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	c.items = append(c.items, d)
	c.count[d.Kind]++
	c.mu.Unlock()

	c.metrics.IncDiagnostic(string(d.Kind))

	attrs := []any{
		slog.String("kind", string(d.Kind)),
		slog.String("source", d.Source),
		slog.String("code", d.Code),
	}
	switch d.Kind {
	case FetchFailure, MalformedRow:
		c.log.Warn(d.Message, attrs...)
	case DataQuality:
		c.log.Info(d.Message, attrs...)
	default:
		// Missing references are numerous on real data.
		c.log.Debug(d.Message, attrs...)
	}
}

// Diagnostics returns a copy of everything reported so far.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

// ByKind returns the diagnostics of one kind in report order.
func (c *Collector) ByKind(kind Kind) []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Diagnostic
	for _, d := range c.items {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Count returns the number of diagnostics of one kind.
func (c *Collector) Count(kind Kind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count[kind]
}

// Len returns the total number of diagnostics.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
