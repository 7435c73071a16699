package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// probeWord is embedded once on acquisition to check the server and learn the dimension.
const probeWord = "hola"

// RemoteConfig configures a Remote backend.
type RemoteConfig struct {
	// URL is the base URL of the embedding server, requests go to URL + "/embed".
	URL     string
	Model   string
	Token   string
	Timeout time.Duration
	Client  *http.Client
}

// Remote calls a sentence transformer server over HTTP:
//
//	POST /embed {"model": "...", "inputs": ["..."], "pooling": "mean", "normalize": true}
//	200 {"embeddings": [[...], ...]}
type Remote struct {
	url   string
	model string
	token string
	cl    *http.Client
	dim   int
}

// APIError is a non 2xx answer of the embedding server.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("embedding server error %d: %s", e.StatusCode, e.Body)
}

type embedRequest struct {
	Model  string   `json:"model,omitempty"`
	Inputs []string `json:"inputs"`
	Options
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
	Error      string      `json:"error,omitempty"`
}

// NewRemote builds a Remote backend and probes the server to learn the vector dimension.
func NewRemote(ctx context.Context, cfg RemoteConfig) (*Remote, error) {
	if cfg.URL == "" {
		return nil, errors.New("embedding server url is required")
	}
	cl := cfg.Client
	if cl == nil {
		cl = &http.Client{Timeout: cfg.Timeout}
	}
	r := &Remote{
		url:   strings.TrimRight(cfg.URL, "/") + "/embed",
		model: cfg.Model,
		token: cfg.Token,
		cl:    cl,
	}
	vecs, err := r.Embed(ctx, []string{probeWord}, DefaultOptions)
	if err != nil {
		return nil, fmt.Errorf("probe embedding server: %w", err)
	}
	if len(vecs) != 1 || len(vecs[0]) == 0 {
		return nil, errors.New("probe embedding server: empty answer")
	}
	r.dim = len(vecs[0])
	return r, nil
}

// RemoteStrategy acquires a Remote backend.
func RemoteStrategy(cfg RemoteConfig) Strategy {
	return Strategy{
		Name: "remote",
		Acquire: func(ctx context.Context) (Backend, error) {
			return NewRemote(ctx, cfg)
		},
	}
}

func (r *Remote) Name() string {
	if r.model == "" {
		return "remote"
	}
	return "remote-" + r.model
}

func (r *Remote) Dimension() int {
	return r.dim
}

func (r *Remote) Embed(ctx context.Context, batch []string, opts Options) ([][]float32, error) {
	body, err := json.Marshal(embedRequest{Model: r.model, Inputs: batch, Options: opts})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	res, err := r.cl.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return nil, &APIError{StatusCode: res.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var out embedResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if out.Error != "" {
		return nil, errors.New(out.Error)
	}
	if len(out.Embeddings) != len(batch) {
		return nil, fmt.Errorf("got %d embeddings for %d inputs", len(out.Embeddings), len(batch))
	}
	return out.Embeddings, nil
}
