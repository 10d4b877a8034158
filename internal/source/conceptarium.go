package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nidhogg/ideoscope/internal/thought"
)

// ConceptariumConfig holds the conceptarium endpoint and credentials.
type ConceptariumConfig struct {
	URL     string
	Token   string
	TopK    int
	Timeout time.Duration
}

// Conceptarium fetches thoughts from a conceptarium's find endpoint. The
// query is deliberately irrelevant: with relatedness and activation weights
// of zero every thought is returned up to TopK.
type Conceptarium struct {
	base   string
	token  string
	topK   int
	client *http.Client
	logger *zap.Logger
}

// NewConceptarium creates an HTTP source for the given conceptarium.
func NewConceptarium(cfg ConceptariumConfig, logger *zap.Logger) *Conceptarium {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Conceptarium{
		base:   strings.TrimRight(cfg.URL, "/"),
		token:  cfg.Token,
		topK:   cfg.TopK,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

func (c *Conceptarium) Name() string { return "conceptarium" }

// Thoughts runs one find query and decodes the authorized thoughts.
func (c *Conceptarium) Thoughts(ctx context.Context) ([]thought.Thought, error) {
	q := url.Values{}
	q.Set("query", "irrelevant")
	q.Set("relatedness", "0")
	q.Set("activation", "0")
	q.Set("top_k", strconv.Itoa(c.topK))
	q.Set("silent", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/find?"+q.Encode(), nil)
	if err != nil {
		return nil, fetchError("create request", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fetchError("send request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fetchError("read response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fetchError("find", fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	thoughts, err := decodeRecords(body)
	if err != nil {
		return nil, fetchError("find", err)
	}
	c.logger.Debug("conceptarium fetched", zap.Int("thoughts", len(thoughts)))
	return thoughts, nil
}
