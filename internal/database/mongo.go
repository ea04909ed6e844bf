package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"portfolio/internal/config"
	"portfolio/internal/domain"
)

type mongoInquiry struct {
	ID                    primitive.ObjectID `bson:"_id"`
	domain.ContactInquiry `bson:",inline"`
}

type mongoCollection struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// DialMongo returns a dialer for the configured MongoDB collection.
// The dial pings the primary so an unreachable store fails here rather
// than on the first insert.
func DialMongo(cfg config.MongoConfig, logger *zap.Logger) func(ctx context.Context) (Collection, error) {
	return func(ctx context.Context) (Collection, error) {
		logger.Info("connecting to MongoDB", zap.String("database", cfg.Database), zap.String("collection", cfg.Collection))

		opts := options.Client().ApplyURI(cfg.URI)
		if deadline, ok := ctx.Deadline(); ok {
			opts.SetServerSelectionTimeout(time.Until(deadline))
		}

		client, err := mongo.Connect(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("ping failed: %w", err)
		}

		logger.Info("MongoDB connected")
		return &mongoCollection{
			client: client,
			coll:   client.Database(cfg.Database).Collection(cfg.Collection),
		}, nil
	}
}

func (m *mongoCollection) Insert(ctx context.Context, inquiry *domain.ContactInquiry) error {
	doc := mongoInquiry{ID: primitive.NewObjectID(), ContactInquiry: *inquiry}
	if _, err := m.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	inquiry.ID = doc.ID.Hex()
	return nil
}

func (m *mongoCollection) List(ctx context.Context, skip, limit int) ([]domain.ContactInquiry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := m.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []mongoInquiry
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]domain.ContactInquiry, len(docs))
	for i, d := range docs {
		out[i] = d.ContactInquiry
		out[i].ID = d.ID.Hex()
	}
	return out, nil
}

func (m *mongoCollection) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
