// Package badgr is an adapter for the badgerDB
package badgr

import (
	"bytes"
	"context"

	"github.com/dgraph-io/badger"

	"github.com/kodekulture/cemantix-server/repository"
)

var _ repository.Vectors = new(VectorRepo)

const vectorPrefix = "vec"

// VectorRepo keeps embedding vectors on disk under "vec:<namespace>:<word>".
type VectorRepo struct {
	db *badger.DB
}

func key(namespace, word string) []byte {
	return []byte(vectorPrefix + ":" + namespace + ":" + word)
}

func prefix(namespace string) []byte {
	return key(namespace, "")
}

// LoadVectors implements repository.Vectors.
func (r *VectorRepo) LoadVectors(ctx context.Context, namespace string) (map[string][]float32, error) {
	vecs := make(map[string][]float32)
	p := prefix(namespace)
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = p
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			word := string(bytes.TrimPrefix(item.Key(), p))
			err := item.Value(func(v []byte) error {
				vec, err := repository.DecodeVector(v)
				if err != nil {
					return err
				}
				vecs[word] = vec
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vecs, nil
}

// SaveVectors implements repository.Vectors.
func (r *VectorRepo) SaveVectors(_ context.Context, namespace string, vectors map[string][]float32) error {
	return r.db.Update(func(txn *badger.Txn) error {
		for word, vec := range vectors {
			e := badger.NewEntry(key(namespace, word), repository.EncodeVector(vec))
			if err := txn.SetEntry(e); err != nil {
				return err
			}
		}
		return nil
	})
}

// DropVectors implements repository.Vectors.
func (r *VectorRepo) DropVectors(_ context.Context, namespace string) error {
	return r.db.DropPrefix(prefix(namespace))
}

// Drop deletes every vector of every namespace.
func (r *VectorRepo) Drop() error {
	return r.db.DropAll()
}

func New(db *badger.DB) *VectorRepo {
	return &VectorRepo{db: db}
}
