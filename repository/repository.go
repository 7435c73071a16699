// Package repository is responsible for the permanent storage of data of this application
package repository

import (
	"context"
	"encoding/binary"
	"errors"
	"math"
)

// Vectors persists embedding vectors so a restarted process does not have to
// recompute them. Vectors are grouped by namespace, the name of the backend
// that produced them, since vectors of different backends are not comparable.
type Vectors interface {
	// LoadVectors returns every vector stored under namespace.
	LoadVectors(ctx context.Context, namespace string) (map[string][]float32, error)

	// SaveVectors upserts vectors under namespace.
	SaveVectors(ctx context.Context, namespace string, vectors map[string][]float32) error

	// DropVectors deletes every vector stored under namespace.
	DropVectors(ctx context.Context, namespace string) error
}

var ErrCorruptVector = errors.New("corrupt vector encoding")

// EncodeVector returns the little endian float32 encoding of v.
func EncodeVector(v []float32) []byte {
	b := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(f))
	}
	return b
}

// DecodeVector is the inverse of EncodeVector.
func DecodeVector(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, ErrCorruptVector
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return v, nil
}
