package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nidhogg/ideoscope/internal/config"
	"github.com/nidhogg/ideoscope/internal/source"
)

var cli struct {
	Config     string        `help:"Config file" default:"configs/ideoscope.json" env:"CONFIG_PATH"`
	To         string        `help:"Mirror target" enum:"qdrant,postgres,neo4j" required:""`
	Migrations string        `help:"PostgreSQL migrations directory" default:"migrations"`
	Timeout    time.Duration `help:"Overall timeout" default:"5m"`
}

// mirror copies the configured conceptarium into a Qdrant, PostgreSQL or
// Neo4j store so the server can later read from it as its source.
func main() {
	_ = godotenv.Load()
	_ = kong.Parse(&cli, kong.Description("Copy a conceptarium into a mirror store."))

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	cfg, err := config.Load(cli.Config)
	if err != nil {
		fatal("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cli.Timeout)
	defer cancel()

	src, closeSource, err := source.Open(ctx, cfg, logger)
	if err != nil {
		fatal("open source %s: %v", cfg.Source, err)
	}
	defer closeSource()

	sink, closeSink, err := openSink(ctx, cfg, cli.To, cli.Migrations, logger)
	if err != nil {
		fatal("open target %s: %v", cli.To, err)
	}
	defer closeSink()

	thoughts, err := src.Thoughts(ctx)
	if err != nil {
		fatal("fetch: %v", err)
	}
	if err := sink.Store(ctx, thoughts); err != nil {
		fatal("store: %v", err)
	}
	fmt.Printf("Mirrored %d thoughts from %s to %s\n", len(thoughts), src.Name(), cli.To)
}

func openSink(ctx context.Context, cfg *config.Config, target, migrations string, logger *zap.Logger) (source.Sink, func(), error) {
	switch target {
	case "qdrant":
		q, err := source.NewQdrant(source.QdrantConfig{
			Host:       cfg.Database.Qdrant.Host,
			Port:       cfg.Database.Qdrant.Port,
			Collection: cfg.Database.Qdrant.Collection,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return q, func() { q.Close() }, nil
	case "postgres":
		p, err := source.NewPostgres(ctx, cfg.Database.Postgres.DSN, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := p.Migrate(ctx, migrations); err != nil {
			p.Close()
			return nil, nil, err
		}
		return p, p.Close, nil
	case "neo4j":
		n, err := source.NewNeo4j(cfg.Database.Neo4j.URI, cfg.Database.Neo4j.User, cfg.Database.Neo4j.Password, logger)
		if err != nil {
			return nil, nil, err
		}
		return n, func() { n.Close(context.Background()) }, nil
	}
	return nil, nil, fmt.Errorf("unknown target %q", target)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "mirror: "+format+"\n", args...)
	os.Exit(1)
}
