//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"go.uber.org/zap"

	"github.com/nidhogg/ideoscope/internal/thought"
)

func TestRedisIntegration(t *testing.T) {
	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("start redis: %v", err)
	}
	defer container.Terminate(ctx)

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("redis endpoint: %v", err)
	}
	c, err := NewRedis(ctx, "redis://"+endpoint, time.Minute, zap.NewNop())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Close()

	if _, ok, err := c.Get(ctx, "s1"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	fetched := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{
		FetchedAt: fetched,
		Thoughts: []thought.Thought{
			{ID: "a", Timestamp: fetched.Add(-time.Hour), Modality: thought.Image, Embedding: []float64{0.5, 0.25}, Activation: 1},
		},
	}
	if err := c.Put(ctx, "s1", snap); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok, err := c.Get(ctx, "s1")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if !got.FetchedAt.Equal(fetched) || len(got.Thoughts) != 1 || got.Thoughts[0].Modality != thought.Image {
		t.Errorf("got %+v", got)
	}

	if err := c.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "s1"); ok {
		t.Error("snapshot survived delete")
	}
}
