package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
)

const (
	// DefaultLocalDimension matches the dimension of small sentence transformer models.
	DefaultLocalDimension = 384

	minNgram = 3
	maxNgram = 6
)

var (
	seedIndex = []byte("cemantix-ngram-idx::")
	seedSign  = []byte("cemantix-ngram-sgn::")
)

// Local is a deterministic pure Go backend based on character n-gram hashing.
// Words sharing sub-word structure get close vectors, which carries
// morphology but no meaning. It is the portable fallback when no model
// server is reachable.
type Local struct {
	dim int
}

// NewLocal returns a Local backend producing vectors of dim dimensions.
func NewLocal(dim int) (*Local, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid embedding dimension %d", dim)
	}
	return &Local{dim: dim}, nil
}

// LocalStrategy acquires a Local backend. It only fails on a bad dimension.
func LocalStrategy(dim int) Strategy {
	return Strategy{
		Name: "local",
		Acquire: func(context.Context) (Backend, error) {
			return NewLocal(dim)
		},
	}
}

func (l *Local) Name() string {
	return fmt.Sprintf("local-ngram-%d", l.dim)
}

func (l *Local) Dimension() int {
	return l.dim
}

// Embed ignores opts.Pooling, a single word has nothing to pool.
func (l *Local) Embed(ctx context.Context, batch []string, opts Options) ([][]float32, error) {
	out := make([][]float32, len(batch))
	for i, text := range batch {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vec := make([]float32, l.dim)
		l.addWord(vec, text)
		if opts.Normalize {
			normalizeL2(vec)
		}
		out[i] = vec
	}
	return out, nil
}

// addWord hashes the bounded word "<w>" and all its 3 to 6 rune n-grams into vec.
func (l *Local) addWord(vec []float32, w string) {
	bounded := []rune("<" + w + ">")
	addFeature(vec, string(bounded))
	for n := minNgram; n <= maxNgram && n <= len(bounded); n++ {
		for i := 0; i+n <= len(bounded); i++ {
			addFeature(vec, string(bounded[i:i+n]))
		}
	}
}

func addFeature(vec []float32, feature string) {
	idx := int(stableHash(seedIndex, feature) % uint64(len(vec)))
	if stableHash(seedSign, feature)%2 == 1 {
		vec[idx] -= 1
	} else {
		vec[idx] += 1
	}
}

func stableHash(seed []byte, s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(seed)
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

func normalizeL2(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	scale := float32(1 / math.Sqrt(sum))
	for i := range vec {
		vec[i] *= scale
	}
}
