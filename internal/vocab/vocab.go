// Package vocab maps closed sets of display labels to symbolic tags.
//
// Every domain axis (element, weapon slot, block type, ...) is one Vocabulary.
// Parsing never defaults: a label outside the set is an *UnknownValueError.
package vocab

import (
	"errors"
	"fmt"
)

// UnknownValueError reports a label that is not part of an axis.
type UnknownValueError struct {
	Axis  string
	Value string
}

func (e *UnknownValueError) Error() string {
	return fmt.Sprintf("unknown %s value %q", e.Axis, e.Value)
}

// IsUnknownValue reports whether err wraps an *UnknownValueError.
func IsUnknownValue(err error) bool {
	var target *UnknownValueError
	return errors.As(err, &target)
}

// Entry pairs a tag with its label.
type Entry[T comparable] struct {
	Tag   T
	Label string
}

// E is shorthand for building an Entry.
func E[T comparable](tag T, label string) Entry[T] {
	return Entry[T]{Tag: tag, Label: label}
}

type Vocabulary[T comparable] struct {
	axis    string
	entries []Entry[T]
	byLabel map[string]T
	byTag   map[T]string
}

// New builds a vocabulary. Duplicate tags or labels panic, since vocabularies
// are declared once at package init.
func New[T comparable](axis string, entries ...Entry[T]) *Vocabulary[T] {
	v := &Vocabulary[T]{
		axis:    axis,
		entries: make([]Entry[T], 0, len(entries)),
		byLabel: make(map[string]T, len(entries)),
		byTag:   make(map[T]string, len(entries)),
	}
	for _, e := range entries {
		if _, dup := v.byLabel[e.Label]; dup {
			panic(fmt.Sprintf("vocab %s: duplicate label %q", axis, e.Label))
		}
		if _, dup := v.byTag[e.Tag]; dup {
			panic(fmt.Sprintf("vocab %s: duplicate tag %v", axis, e.Tag))
		}
		v.byLabel[e.Label] = e.Tag
		v.byTag[e.Tag] = e.Label
		v.entries = append(v.entries, e)
	}
	return v
}

func (v *Vocabulary[T]) Axis() string {
	return v.axis
}

// Parse resolves a label to its tag.
func (v *Vocabulary[T]) Parse(label string) (T, error) {
	tag, ok := v.byLabel[label]
	if !ok {
		var zero T
		return zero, &UnknownValueError{Axis: v.axis, Value: label}
	}
	return tag, nil
}

// Label returns the label for tag, or "" when tag is not part of the axis.
func (v *Vocabulary[T]) Label(tag T) string {
	return v.byTag[tag]
}

// Contains reports whether tag is part of the axis.
func (v *Vocabulary[T]) Contains(tag T) bool {
	_, ok := v.byTag[tag]
	return ok
}

// Tags returns all tags in declaration order.
func (v *Vocabulary[T]) Tags() []T {
	out := make([]T, 0, len(v.entries))
	for _, e := range v.entries {
		out = append(out, e.Tag)
	}
	return out
}

// Labels returns all labels in declaration order.
func (v *Vocabulary[T]) Labels() []string {
	out := make([]string, 0, len(v.entries))
	for _, e := range v.entries {
		out = append(out, e.Label)
	}
	return out
}
