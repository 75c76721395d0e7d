package index

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"

	"github.com/linkalytics/factorlink/pkg/types"
)

// Config holds the connection settings for the Elasticsearch backend.
type Config struct {
	Addresses     []string
	Index         string
	Size          int
	Username      string
	Password      string
	APIKey        string
	Timeout       time.Duration
	SkipTLSVerify bool
}

// Elastic implements Searcher against an Elasticsearch index.
type Elastic struct {
	es     *elasticsearch.Client
	index  string
	size   int
	logger *slog.Logger
}

// NewElastic creates a client for the configured index and verifies
// connectivity with an Info call.
func NewElastic(cfg Config, logger *slog.Logger) (*Elastic, error) {
	if cfg.Index == "" {
		return nil, fmt.Errorf("index: index name is required")
	}
	if cfg.Size <= 0 {
		cfg.Size = DefaultSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	esCfg := elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
		APIKey:    cfg.APIKey,
	}
	transport := &http.Transport{}
	if cfg.SkipTLSVerify {
		logger.Warn("TLS certificate verification disabled")
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	if cfg.Timeout > 0 {
		transport.ResponseHeaderTimeout = cfg.Timeout
	}
	esCfg.Transport = transport

	es, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("index: create client: %w", err)
	}

	res, err := es.Info()
	if err != nil {
		return nil, fmt.Errorf("index: connect: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, &StatusError{Status: res.StatusCode, Body: string(body)}
	}

	logger.Info("connected to search backend", "index", cfg.Index, "size_cap", cfg.Size)
	return &Elastic{es: es, index: cfg.Index, size: cfg.Size, logger: logger}, nil
}

// WithIndex returns a client identical to e but querying a different index.
// Used for the factor-state index alongside the primary one.
func (e *Elastic) WithIndex(index string) *Elastic {
	clone := *e
	clone.index = index
	return &clone
}

// MatchPhrase implements Searcher.
func (e *Elastic) MatchPhrase(ctx context.Context, field, value string) (*Result, error) {
	var query map[string]any
	if field == AllFields {
		query = map[string]any{
			"multi_match": map[string]any{
				"query": value,
				"type":  "phrase",
			},
		}
	} else {
		query = map[string]any{
			"match_phrase": map[string]any{
				field: value,
			},
		}
	}
	return e.search(ctx, query)
}

// Match implements Searcher.
func (e *Elastic) Match(ctx context.Context, field, value string) (*Result, error) {
	return e.search(ctx, map[string]any{
		"match": map[string]any{
			field: value,
		},
	})
}

// IDs implements Searcher.
func (e *Elastic) IDs(ctx context.Context, ids []string) (*Result, error) {
	return e.search(ctx, map[string]any{
		"ids": map[string]any{
			"values": ids,
		},
	})
}

// envelope is the subset of the backend's native hit-array shape we consume.
type envelope struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string         `json:"_id"`
			Source types.Document `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (e *Elastic) search(ctx context.Context, query map[string]any) (*Result, error) {
	payload := map[string]any{
		"size":  e.size,
		"query": query,
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, fmt.Errorf("index: encode query: %w", err)
	}

	res, err := e.es.Search(
		e.es.Search.WithContext(ctx),
		e.es.Search.WithIndex(e.index),
		e.es.Search.WithBody(&buf),
		e.es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, fmt.Errorf("index: search request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, &StatusError{Status: res.StatusCode, Body: string(body)}
	}

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("index: decode response: %w", err)
	}

	out := &Result{
		Total: env.Hits.Total.Value,
		Hits:  make([]Hit, 0, len(env.Hits.Hits)),
	}
	for _, h := range env.Hits.Hits {
		out.Hits = append(out.Hits, Hit{ID: h.ID, Source: h.Source})
	}
	return out, nil
}
