package search

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/napleton/fueltrakr/internal/core/domain"
	"github.com/napleton/fueltrakr/internal/infra/api"
)

// Config holds Elasticsearch connection configuration. A cloud ID takes
// precedence over a node URL; an API key takes precedence over basic auth.
type Config struct {
	Node        string        `yaml:"node"`
	CloudID     string        `yaml:"cloud_id"`
	APIKey      string        `yaml:"api_key"`
	Username    string        `yaml:"username"`
	Password    string        `yaml:"password"`
	IndexPrefix string        `yaml:"index_prefix"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Client is a thin REST wrapper around the search store, sharing the
// resilient executor with the rest of the app.
type Client struct {
	http   *api.Client
	prefix string
}

// NewClient creates a search client from configuration.
func NewClient(cfg Config, retry api.RetryConfig) (*Client, error) {
	baseURL, err := resolveBaseURL(cfg)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{}
	if h := authHeader(cfg); h != "" {
		headers["Authorization"] = h
	}

	prefix := cfg.IndexPrefix
	if prefix == "" {
		prefix = "fueltrakr"
	}

	return &Client{
		http:   api.NewClient("elasticsearch", baseURL, headers, retry, cfg.Timeout),
		prefix: prefix,
	}, nil
}

// resolveBaseURL derives the endpoint from a cloud ID (base64 "domain$uuid"
// after the deployment name) or falls back to the node URL.
func resolveBaseURL(cfg Config) (string, error) {
	if cfg.CloudID != "" {
		parts := strings.SplitN(cfg.CloudID, ":", 2)
		if len(parts) != 2 {
			return "", fmt.Errorf("malformed cloud id")
		}
		decoded, err := base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			return "", fmt.Errorf("decode cloud id: %w", err)
		}
		fields := strings.SplitN(string(decoded), "$", 2)
		if len(fields) != 2 {
			return "", fmt.Errorf("malformed cloud id payload")
		}
		return fmt.Sprintf("https://%s.%s", fields[1], fields[0]), nil
	}
	if cfg.Node != "" {
		return cfg.Node, nil
	}
	return "http://localhost:9200", nil
}

func authHeader(cfg Config) string {
	if cfg.APIKey != "" {
		return "ApiKey " + cfg.APIKey
	}
	if cfg.Username != "" {
		creds := base64.StdEncoding.EncodeToString([]byte(cfg.Username + ":" + cfg.Password))
		return "Basic " + creds
	}
	return ""
}

// IndexName returns the prefixed index name for a collection kind.
func (c *Client) IndexName(kind string) string {
	return c.prefix + "_" + kind
}

// IndexExists probes an index with HEAD.
func (c *Client) IndexExists(ctx context.Context, index string) (bool, error) {
	status, err := c.http.Head(ctx, "/"+index, nil)
	if err != nil {
		return false, err
	}
	return status == http.StatusOK, nil
}

// CreateIndex creates an index with the given mappings and single-shard,
// single-replica settings.
func (c *Client) CreateIndex(ctx context.Context, index string, mappings any) error {
	body := map[string]any{
		"mappings": mappings,
		"settings": map[string]any{
			"number_of_shards":   1,
			"number_of_replicas": 1,
		},
	}
	return c.http.Put(ctx, "/"+index, body, nil, nil)
}

// IndexDoc writes a document, waiting for it to become searchable.
func (c *Client) IndexDoc(ctx context.Context, index, id string, doc any) error {
	return c.http.Put(ctx, fmt.Sprintf("/%s/_doc/%s?refresh=wait_for", index, id), doc, nil, nil)
}

// GetDoc fetches a document's source by id. Returns domain.ErrNotFound for a
// missing document.
func (c *Client) GetDoc(ctx context.Context, index, id string, out any) error {
	var envelope struct {
		Source json.RawMessage `json:"_source"`
	}
	err := c.http.Get(ctx, fmt.Sprintf("/%s/_doc/%s", index, id), nil, &envelope)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	if err := json.Unmarshal(envelope.Source, out); err != nil {
		return fmt.Errorf("parse document: %w", err)
	}
	return nil
}

// UpdateDoc applies a partial document update.
func (c *Client) UpdateDoc(ctx context.Context, index, id string, doc any) error {
	err := c.http.Post(ctx, fmt.Sprintf("/%s/_update/%s?refresh=wait_for", index, id),
		map[string]any{"doc": doc}, nil, nil)
	if isStatus(err, http.StatusNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// DeleteDoc removes a document by id.
func (c *Client) DeleteDoc(ctx context.Context, index, id string) error {
	err := c.http.Delete(ctx, fmt.Sprintf("/%s/_doc/%s?refresh=wait_for", index, id), nil, nil)
	if isStatus(err, http.StatusNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// SearchResult is the subset of the _search response the app consumes.
type SearchResult struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string          `json:"_id"`
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
	Aggregations map[string]json.RawMessage `json:"aggregations"`
}

// Search runs a query against an index.
func (c *Client) Search(ctx context.Context, index string, body any) (*SearchResult, error) {
	var result SearchResult
	if err := c.http.Post(ctx, "/"+index+"/_search", body, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteByQuery removes every document matching the query.
func (c *Client) DeleteByQuery(ctx context.Context, index string, body any) error {
	return c.http.Post(ctx, "/"+index+"/_delete_by_query?refresh=true", body, nil, nil)
}

func isStatus(err error, code int) bool {
	var se *api.StatusError
	return errors.As(err, &se) && se.Code == code
}
