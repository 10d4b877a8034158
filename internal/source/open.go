package source

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nidhogg/ideoscope/internal/config"
	"github.com/nidhogg/ideoscope/internal/thought"
)

// Sink is a mirror thoughts can be copied into.
type Sink interface {
	Store(ctx context.Context, thoughts []thought.Thought) error
}

// Open builds the source named by cfg.Source. The returned close function
// releases its connections and is never nil.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Source, func(), error) {
	switch cfg.Source {
	case "conceptarium":
		return NewConceptarium(ConceptariumConfig{
			URL:     cfg.Conceptarium.URL,
			Token:   cfg.Conceptarium.Token,
			TopK:    cfg.Conceptarium.TopK,
			Timeout: time.Duration(cfg.Conceptarium.TimeoutSeconds) * time.Second,
		}, logger), func() {}, nil
	case "file":
		return NewFile(cfg.Conceptarium.Dump), func() {}, nil
	case "qdrant":
		q, err := NewQdrant(QdrantConfig{
			Host:       cfg.Database.Qdrant.Host,
			Port:       cfg.Database.Qdrant.Port,
			Collection: cfg.Database.Qdrant.Collection,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return q, func() { q.Close() }, nil
	case "postgres":
		p, err := NewPostgres(ctx, cfg.Database.Postgres.DSN, logger)
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil
	case "neo4j":
		n, err := NewNeo4j(cfg.Database.Neo4j.URI, cfg.Database.Neo4j.User, cfg.Database.Neo4j.Password, logger)
		if err != nil {
			return nil, nil, err
		}
		return n, func() { n.Close(context.Background()) }, nil
	}
	return nil, nil, fmt.Errorf("unknown source %q", cfg.Source)
}
