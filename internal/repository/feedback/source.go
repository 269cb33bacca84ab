// Package feedback provides the rating examples handed to the scoring engine.
package feedback

import (
	"context"
	"fmt"

	domfb "github.com/cmarsiglia/habitai/internal/domain/feedback"
)

// Source names accepted by New.
const (
	SourceEmpty  = "empty"
	SourceStatic = "static"
)

// Empty is a source without records. The engine then always uses the
// heuristic strategy.
type Empty struct{}

// Records returns no records.
func (Empty) Records(_ context.Context) ([]domfb.Record, error) { return nil, nil }

// Static serves a fixed in-memory sample.
type Static struct {
	records []domfb.Record
}

// NewStatic creates a source serving records. The slice is copied.
func NewStatic(records []domfb.Record) *Static {
	return &Static{records: append([]domfb.Record(nil), records...)}
}

// Records returns a copy of the sample.
func (s *Static) Records(_ context.Context) ([]domfb.Record, error) {
	return append([]domfb.Record(nil), s.records...), nil
}

// Source is what New returns.
type Source interface {
	Records(ctx context.Context) ([]domfb.Record, error)
}

// New returns the source named by name.
func New(name string) (Source, error) {
	switch name {
	case SourceEmpty, "":
		return Empty{}, nil
	case SourceStatic:
		return NewStatic(domfb.Sample()), nil
	default:
		return nil, fmt.Errorf("unknown feedback source %q", name)
	}
}
