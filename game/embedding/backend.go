// Package embedding turns words into vectors. It owns the model lifecycle
// (acquire a backend once, in the background, with fallbacks) and the
// per-word vector cache.
package embedding

import (
	"context"
	"errors"
	"fmt"
)

// Options are passed to every embedding request.
type Options struct {
	Pooling   string `json:"pooling"`
	Normalize bool   `json:"normalize"`
}

// DefaultOptions asks for mean pooled, L2 normalized vectors.
var DefaultOptions = Options{Pooling: "mean", Normalize: true}

// Backend computes one fixed length vector per input text.
type Backend interface {
	// Name identifies the backend and model. Vectors of different names are never mixed.
	Name() string
	Dimension() int
	Embed(ctx context.Context, batch []string, opts Options) ([][]float32, error)
}

// Strategy is one way of acquiring a Backend.
type Strategy struct {
	Name    string
	Acquire func(ctx context.Context) (Backend, error)
}

var (
	// ErrUnavailable is returned when no backend has been acquired (yet, or ever).
	ErrUnavailable = errors.New("embedding backend unavailable")
	// ErrNoStrategy is returned when a provider is started without strategies.
	ErrNoStrategy = errors.New("no embedding strategy configured")
)

// ComputeError wraps a failure to embed a specific word.
type ComputeError struct {
	Word string
	Err  error
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("embed %q: %v", e.Word, e.Err)
}

func (e *ComputeError) Unwrap() error {
	return e.Err
}

// embedOne runs a single item batch and checks the shape of the answer.
func embedOne(ctx context.Context, b Backend, w string) ([]float32, error) {
	vecs, err := b.Embed(ctx, []string{w}, DefaultOptions)
	if err != nil {
		return nil, err
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("backend %s returned %d vectors for 1 input", b.Name(), len(vecs))
	}
	if b.Dimension() > 0 && len(vecs[0]) != b.Dimension() {
		return nil, fmt.Errorf("backend %s returned a %d dimension vector, expected %d", b.Name(), len(vecs[0]), b.Dimension())
	}
	return vecs[0], nil
}
