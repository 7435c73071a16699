// Package redis shares embedding vectors between server instances.
package redis

import (
	"context"
	"strings"
	"time"

	redis9 "github.com/redis/go-redis/v9"

	"github.com/kodekulture/cemantix-server/repository"
)

const (
	// VectorExp is refreshed on every write, unused namespaces expire.
	VectorExp = 30 * 24 * time.Hour
)

var _ repository.Vectors = VectorRepo{}

// VectorRepo stores one hash per namespace, field word, value the encoded vector.
type VectorRepo struct {
	cl *redis9.Client
}

func NewVectorRepo(cl *redis9.Client) VectorRepo {
	return VectorRepo{cl: cl}
}

// LoadVectors implements repository.Vectors.
func (r VectorRepo) LoadVectors(ctx context.Context, namespace string) (map[string][]float32, error) {
	res, err := r.cl.HGetAll(ctx, vs(namespace)).Result()
	if err != nil {
		return nil, err
	}
	vecs := make(map[string][]float32, len(res))
	for word, raw := range res {
		vec, err := repository.DecodeVector([]byte(raw))
		if err != nil {
			return nil, err
		}
		vecs[word] = vec
	}
	return vecs, nil
}

// SaveVectors implements repository.Vectors.
func (r VectorRepo) SaveVectors(ctx context.Context, namespace string, vectors map[string][]float32) error {
	if len(vectors) == 0 {
		return nil
	}
	values := make([]any, 0, 2*len(vectors))
	for word, vec := range vectors {
		values = append(values, word, repository.EncodeVector(vec))
	}
	_, err := r.cl.Pipelined(ctx, func(pipe redis9.Pipeliner) error {
		if err := pipe.HSet(ctx, vs(namespace), values...).Err(); err != nil {
			return err
		}
		return pipe.Expire(ctx, vs(namespace), VectorExp).Err()
	})
	return err
}

// DropVectors implements repository.Vectors.
func (r VectorRepo) DropVectors(ctx context.Context, namespace string) error {
	return r.cl.Del(ctx, vs(namespace)).Err()
}

func keyed(keys ...string) string {
	return strings.Join(keys, ":")
}

func vs(namespace string) string {
	return keyed("cemantix", "vectors", namespace)
}
