// Package dedupe rewrites repeated string values so that every occurrence
// becomes distinct, e.g. "Test" -> "Test - 001", "Test - 002".
package dedupe

import (
	"fmt"
	"log/slog"

	"github.com/mcncl/jsonlens/internal/duplicates"
	"github.com/mcncl/jsonlens/internal/models"
	"github.com/mcncl/jsonlens/internal/pathaddr"
)

const (
	DefaultSeparator = " - "
	DefaultMinWidth  = 3
)

// Result is the outcome of a deduplication pass.
type Result struct {
	// Value is the rewritten document. It never shares structure with the input.
	Value models.JSONValue
	// Rewritten counts the string leaves that received a number.
	Rewritten int
	// Skipped lists recorded paths that could not be written back.
	Skipped []string
}

// Deduplicator numbers repeated strings. The zero value is not usable; use New.
type Deduplicator struct {
	separator string
	minWidth  int
	logger    *slog.Logger
}

// Option configures a Deduplicator.
type Option func(*Deduplicator)

// WithSeparator sets the text placed between the value and its number.
func WithSeparator(sep string) Option {
	return func(d *Deduplicator) {
		d.separator = sep
	}
}

// WithMinWidth sets the minimum number of digits; shorter numbers are zero padded.
func WithMinWidth(width int) Option {
	return func(d *Deduplicator) {
		if width > 0 {
			d.minWidth = width
		}
	}
}

// WithLogger sets the logger used to report skipped occurrences.
// Without it slog.Default is used.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Deduplicator) {
		d.logger = logger
	}
}

// New creates a Deduplicator with the default " - " separator and three digit numbers.
func New(opts ...Option) *Deduplicator {
	d := &Deduplicator{
		separator: DefaultSeparator,
		minWidth:  DefaultMinWidth,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Label returns the replacement for the n-th (1-based) occurrence of value.
// Numbers wider than the minimum width are used as they are.
func (d *Deduplicator) Label(value string, n int) string {
	return fmt.Sprintf("%s%s%0*d", value, d.separator, d.minWidth, n)
}

// DeduplicateOne numbers every occurrence of target in a copy of value.
// Occurrences are collected from value at call time, so the numbering follows
// traversal order of the input and is not affected by the writes themselves.
// When target occurs fewer than two times the copy is returned unchanged.
func (d *Deduplicator) DeduplicateOne(value models.JSONValue, target string) Result {
	res := Result{Value: models.Clone(value)}
	d.number(&res, duplicates.Collect(value).Paths(target), target)
	return res
}

// DeduplicateAll numbers every string that has duplicates in value. The
// duplicate set is computed once up front, in FindDuplicates order; for each
// value the occurrences are then collected afresh from the tree rewritten so
// far, exactly as a chain of DeduplicateOne calls would.
func (d *Deduplicator) DeduplicateAll(value models.JSONValue) Result {
	records := duplicates.FindDuplicates(value)
	res := Result{Value: models.Clone(value)}
	for _, record := range records {
		d.number(&res, duplicates.Collect(res.Value).Paths(record.Value), record.Value)
	}
	d.log().Debug("Deduplicated strings", "values", len(records), "rewritten", res.Rewritten)
	return res
}

// number writes the numbered labels into res.Value, which must be a private copy.
func (d *Deduplicator) number(res *Result, paths []string, target string) {
	if len(paths) < 2 {
		return
	}
	for i, text := range paths {
		if err := d.rewrite(res.Value, text, target, d.Label(target, i+1)); err != nil {
			// A path that no longer resolves loses its number; the rest of the pass continues.
			d.log().Debug("Skipped duplicate occurrence", "path", text, "value", target, "error", err)
			res.Skipped = append(res.Skipped, text)
			continue
		}
		res.Rewritten++
	}
}

func (d *Deduplicator) log() *slog.Logger {
	if d.logger != nil {
		return d.logger
	}
	return slog.Default()
}

// rewrite replaces the string at path text, provided it still holds target.
func (d *Deduplicator) rewrite(root models.JSONValue, text, target, label string) error {
	path, err := pathaddr.Parse(text)
	if err != nil {
		return err
	}
	if path.IsRoot() {
		return fmt.Errorf("root string cannot be rewritten in place")
	}
	current, err := pathaddr.Resolve(path, root)
	if err != nil {
		return err
	}
	if s, ok := current.(string); !ok || s != target {
		return fmt.Errorf("value at %s is no longer %q", text, target)
	}
	return pathaddr.Write(path, root, label)
}

var defaultDeduplicator = New()

// DeduplicateOne numbers the occurrences of target using the default format.
func DeduplicateOne(value models.JSONValue, target string) models.JSONValue {
	return defaultDeduplicator.DeduplicateOne(value, target).Value
}

// DeduplicateAll numbers all duplicated strings using the default format.
func DeduplicateAll(value models.JSONValue) models.JSONValue {
	return defaultDeduplicator.DeduplicateAll(value).Value
}
