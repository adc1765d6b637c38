package users

import (
	"context"
	"fmt"
	"time"

	"github.com/ErwinJ1299/scout2-sub002/errors"
	"github.com/fatih/structs"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

const (
	statsCollectionName = "user_stats"
)

//go:generate mockgen --build_flags=--mod=mod -source=./repo.go -destination=./test/mock_repository.go -package test -aux_files=github.com/ErwinJ1299/scout2-sub002/users=users.go MockRepository

type Repository interface {
	Service
}

func NewRepository(db *mongo.Database, lifecycle fx.Lifecycle) (Repository, error) {
	repo := &repository{
		collection: db.Collection(statsCollectionName),
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return repo.Initialize(ctx)
		},
	})

	return repo, nil
}

type repository struct {
	collection *mongo.Collection
}

func (r *repository) Initialize(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "userId", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("UniqueUserStats"),
		},
	})
	return err
}

func (r *repository) Get(ctx context.Context, userId string) (*Stats, error) {
	stats := &Stats{}
	err := r.collection.FindOne(ctx, bson.M{"userId": userId}).Decode(stats)
	if err == mongo.ErrNoDocuments {
		return &Stats{UserId: userId}, nil
	} else if err != nil {
		return nil, fmt.Errorf("error retrieving user stats: %w", err)
	}
	return stats, nil
}

// Increment applies the deltas with a single upserted $inc so concurrent
// grants for the same user never clobber each other with stale reads.
func (r *repository) Increment(ctx context.Context, userId string, increment StatsIncrement) error {
	if userId == "" {
		return fmt.Errorf("%w: user id is missing", errors.BadRequest)
	}
	if increment.IsZero() {
		return nil
	}

	update := bson.M{
		"$inc": incrementDocument(increment),
		"$set": bson.M{
			"updatedAt":      time.Now(),
			"lastActivityAt": time.Now(),
		},
		"$setOnInsert": bson.M{
			"userId": userId,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, bson.M{"userId": userId}, update, opts); err != nil {
		return fmt.Errorf("error incrementing user stats: %w", err)
	}
	return nil
}

func incrementDocument(increment StatsIncrement) bson.M {
	doc := bson.M{}
	for field, value := range structs.Map(increment) {
		if delta, ok := value.(int); ok && delta != 0 {
			doc[field] = delta
		}
	}
	return doc
}
