package source

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	pb "github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/nidhogg/ideoscope/internal/thought"
)

const scrollPage = 256

// QdrantConfig holds connection settings for a Qdrant instance.
type QdrantConfig struct {
	Host       string
	Port       int
	Collection string
}

// Qdrant reads and writes thoughts as points of one collection. The point
// payload carries id, timestamp, modality, content and activation.
type Qdrant struct {
	conn        *grpc.ClientConn
	collections pb.CollectionsClient
	points      pb.PointsClient
	collection  string
	logger      *zap.Logger
}

// NewQdrant dials the Qdrant gRPC endpoint.
func NewQdrant(cfg QdrantConfig, logger *zap.Logger) (*Qdrant, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("qdrant connect %s: %w", addr, err)
	}
	return &Qdrant{
		conn:        conn,
		collections: pb.NewCollectionsClient(conn),
		points:      pb.NewPointsClient(conn),
		collection:  cfg.Collection,
		logger:      logger,
	}, nil
}

func (q *Qdrant) Name() string { return "qdrant" }

// Thoughts scrolls through the whole collection.
func (q *Qdrant) Thoughts(ctx context.Context) ([]thought.Thought, error) {
	limit := uint32(scrollPage)
	var (
		offset   *pb.PointId
		thoughts []thought.Thought
	)
	for {
		resp, err := q.points.Scroll(ctx, &pb.ScrollPoints{
			CollectionName: q.collection,
			Offset:         offset,
			Limit:          &limit,
			WithPayload:    &pb.WithPayloadSelector{SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true}},
			WithVectors:    &pb.WithVectorsSelector{SelectorOptions: &pb.WithVectorsSelector_Enable{Enable: true}},
		})
		if err != nil {
			return nil, fetchError("scroll "+q.collection, err)
		}
		for _, p := range resp.GetResult() {
			t, err := pointToThought(p)
			if err != nil {
				return nil, fetchError("scroll "+q.collection, err)
			}
			thoughts = append(thoughts, t)
		}
		offset = resp.GetNextPageOffset()
		if offset == nil {
			break
		}
	}
	q.logger.Debug("qdrant scrolled", zap.String("collection", q.collection), zap.Int("thoughts", len(thoughts)))
	return thoughts, nil
}

// EnsureCollection creates the collection if it does not already exist.
func (q *Qdrant) EnsureCollection(ctx context.Context, dimension uint64) error {
	_, err := q.collections.Get(ctx, &pb.GetCollectionInfoRequest{CollectionName: q.collection})
	if err == nil {
		return nil
	}
	_, err = q.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: q.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     dimension,
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create collection %s: %w", q.collection, err)
	}
	return nil
}

// Store upserts thoughts as points, creating the collection on first use.
func (q *Qdrant) Store(ctx context.Context, thoughts []thought.Thought) error {
	if len(thoughts) == 0 {
		return nil
	}
	if err := q.EnsureCollection(ctx, uint64(len(thoughts[0].Embedding))); err != nil {
		return err
	}
	points := make([]*pb.PointStruct, len(thoughts))
	for i, t := range thoughts {
		vector := make([]float32, len(t.Embedding))
		for j, v := range t.Embedding {
			vector[j] = float32(v)
		}
		points[i] = &pb.PointStruct{
			Id:      &pb.PointId{PointIdOptions: &pb.PointId_Uuid{Uuid: pointID(t.ID)}},
			Vectors: &pb.Vectors{VectorsOptions: &pb.Vectors_Vector{Vector: &pb.Vector{Data: vector}}},
			Payload: pb.NewValueMap(map[string]any{
				"id":         t.ID,
				"timestamp":  float64(t.Timestamp.UnixNano()) / 1e9,
				"modality":   t.Modality.String(),
				"content":    t.Content,
				"activation": t.Activation,
			}),
		}
	}
	wait := true
	if _, err := q.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: q.collection,
		Wait:           &wait,
		Points:         points,
	}); err != nil {
		return fmt.Errorf("upsert %s: %w", q.collection, err)
	}
	return nil
}

// Close tears down the underlying gRPC connection.
func (q *Qdrant) Close() error {
	return q.conn.Close()
}

// pointID maps an arbitrary thought id (often a filename) to the UUID
// Qdrant requires.
func pointID(id string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(id)).String()
}

func pointToThought(p *pb.RetrievedPoint) (thought.Thought, error) {
	payload := p.GetPayload()
	r := record{
		ID:         payload["id"].GetStringValue(),
		Timestamp:  number(payload["timestamp"]),
		Modality:   payload["modality"].GetStringValue(),
		Content:    payload["content"].GetStringValue(),
		Activation: number(payload["activation"]),
	}
	if r.ID == "" {
		if u := p.GetId().GetUuid(); u != "" {
			r.ID = u
		} else {
			r.ID = strconv.FormatUint(p.GetId().GetNum(), 10)
		}
	}
	vec := p.GetVectors().GetVector()
	data := vec.GetDense().GetData()
	if len(data) == 0 {
		data = vec.GetData()
	}
	r.Embedding = make([]float64, len(data))
	for i, v := range data {
		r.Embedding[i] = float64(v)
	}
	return r.toThought()
}

// number reads a payload value stored as either a double or an integer.
func number(v *pb.Value) float64 {
	if _, ok := v.GetKind().(*pb.Value_IntegerValue); ok {
		return float64(v.GetIntegerValue())
	}
	return v.GetDoubleValue()
}
