package word

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Source is a newline-delimited word resource.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// FileSource reads words from a local file.
type FileSource string

func (s FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	return os.Open(string(s))
}

func (s FileSource) String() string {
	return "file:" + string(s)
}

// StringSource serves words from memory.
type StringSource string

func (s StringSource) Open(_ context.Context) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(s))), nil
}

func (s StringSource) String() string {
	return "memory"
}

// URLSource downloads words over HTTP.
type URLSource struct {
	URL    string
	Client *http.Client
}

// NewURLSource returns a URLSource using a client with the given timeout.
func NewURLSource(url string, timeout time.Duration) *URLSource {
	return &URLSource{URL: url, Client: &http.Client{Timeout: timeout}}
}

func (s *URLSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	cl := s.Client
	if cl == nil {
		cl = http.DefaultClient
	}
	res, err := cl.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, fmt.Errorf("fetch %s: unexpected status %d", s.URL, res.StatusCode)
	}
	return res.Body, nil
}

func (s *URLSource) String() string {
	return s.URL
}
