package source

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/nidhogg/ideoscope/internal/thought"
)

// Neo4j reads thoughts stored as (:Thought) nodes.
type Neo4j struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewNeo4j creates a Neo4j source. Empty credentials disable auth.
func NewNeo4j(uri, user, password string, logger *zap.Logger) (*Neo4j, error) {
	auth := neo4j.NoAuth()
	if user != "" {
		auth = neo4j.BasicAuth(user, password, "")
	}
	driver, err := neo4j.NewDriverWithContext(uri, auth)
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	return &Neo4j{driver: driver, logger: logger}, nil
}

func (n *Neo4j) Name() string { return "neo4j" }

// Ping verifies the Neo4j connection.
func (n *Neo4j) Ping(ctx context.Context) error {
	return n.driver.VerifyConnectivity(ctx)
}

// Close shuts down the Neo4j driver.
func (n *Neo4j) Close(ctx context.Context) error {
	return n.driver.Close(ctx)
}

func (n *Neo4j) Thoughts(ctx context.Context) ([]thought.Thought, error) {
	session := n.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx,
		`MATCH (t:Thought)
		 RETURN t.id, t.timestamp, t.modality, t.content, t.embedding, t.activation
		 ORDER BY t.timestamp`, nil)
	if err != nil {
		return nil, fetchError("match thoughts", err)
	}

	var thoughts []thought.Thought
	for result.Next(ctx) {
		rec := result.Record()
		id, _ := rec.Get("t.id")
		ts, _ := rec.Get("t.timestamp")
		modality, _ := rec.Get("t.modality")
		content, _ := rec.Get("t.content")
		embedding, _ := rec.Get("t.embedding")
		activation, _ := rec.Get("t.activation")

		r := record{
			Timestamp:  toFloat(ts),
			Activation: toFloat(activation),
		}
		r.ID, _ = id.(string)
		r.Modality, _ = modality.(string)
		r.Content, _ = content.(string)
		if list, ok := embedding.([]any); ok {
			r.Embedding = make([]float64, len(list))
			for i, v := range list {
				r.Embedding[i] = toFloat(v)
			}
		}
		t, err := r.toThought()
		if err != nil {
			return nil, fetchError("match thoughts", err)
		}
		thoughts = append(thoughts, t)
	}
	if err := result.Err(); err != nil {
		return nil, fetchError("match thoughts", err)
	}
	return thoughts, nil
}

// Store merges thoughts into (:Thought) nodes keyed by id.
func (n *Neo4j) Store(ctx context.Context, thoughts []thought.Thought) error {
	session := n.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	for _, t := range thoughts {
		_, err := session.Run(ctx,
			`MERGE (t:Thought {id: $id})
			 SET t.timestamp = $timestamp, t.modality = $modality,
			     t.content = $content, t.embedding = $embedding,
			     t.activation = $activation`,
			map[string]interface{}{
				"id":         t.ID,
				"timestamp":  float64(t.Timestamp.UnixNano()) / 1e9,
				"modality":   t.Modality.String(),
				"content":    t.Content,
				"embedding":  t.Embedding,
				"activation": t.Activation,
			})
		if err != nil {
			return fmt.Errorf("merge thought %s: %w", t.ID, err)
		}
	}
	return nil
}

// toFloat accepts the numeric types the driver returns.
func toFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int64:
		return float64(x)
	}
	return 0
}
