package word

import (
	"bufio"
	"context"
	"io"
	"runtime"
	"strings"
	"sync"
)

// DefaultChunkSize is the number of dictionary lines inserted between two yields.
const DefaultChunkSize = 5000

// Dictionary is a concurrency safe set of normalized words.
// It can be read while it is being populated; lookups see whatever has been
// inserted so far.
type Dictionary struct {
	mu    sync.RWMutex
	words map[string]struct{}
}

func NewDictionary() *Dictionary {
	return &Dictionary{words: make(map[string]struct{})}
}

// Add normalizes and inserts words.
func (d *Dictionary) Add(words ...string) {
	keys := make([]string, 0, len(words))
	for _, w := range words {
		if k := Normalize(strings.TrimSpace(w)); k != "" {
			keys = append(keys, k)
		}
	}
	d.insert(keys)
}

func (d *Dictionary) insert(keys []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, k := range keys {
		d.words[k] = struct{}{}
	}
}

// Contains reports whether the normalized form of w has been loaded.
func (d *Dictionary) Contains(w string) bool {
	k := Normalize(strings.TrimSpace(w))
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.words[k]
	return ok
}

func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.words)
}

// Load reads a newline-delimited word list from r into the dictionary.
//
// Entries are inserted chunkSize lines at a time and the goroutine yields
// between chunks, so readers are never locked out for long and other
// goroutines keep running while a large list loads.
// It returns the number of lines inserted.
func (d *Dictionary) Load(ctx context.Context, r io.Reader, chunkSize int) (int, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	var (
		total int
		chunk = make([]string, 0, chunkSize)
	)
	flush := func() error {
		if len(chunk) == 0 {
			return nil
		}
		d.insert(chunk)
		total += len(chunk)
		chunk = chunk[:0]
		runtime.Gosched()
		return ctx.Err()
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		k := Normalize(strings.TrimSpace(sc.Text()))
		if k == "" {
			continue
		}
		chunk = append(chunk, k)
		if len(chunk) == chunkSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return total, err
	}
	return total, flush()
}
