package readings

import (
	"context"
	"fmt"
	"time"

	"github.com/ErwinJ1299/scout2-sub002/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

const (
	readingsCollectionName = "readings"
)

//go:generate mockgen --build_flags=--mod=mod -source=./repo.go -destination=./test/mock_repository.go -package test -aux_files=github.com/ErwinJ1299/scout2-sub002/readings=readings.go MockRepository

type Repository interface {
	Service
}

func NewRepository(db *mongo.Database, lifecycle fx.Lifecycle) (Repository, error) {
	repo := &repository{
		collection: db.Collection(readingsCollectionName),
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
				{Key: "patientId", Value: 1},
				{Key: "timestamp", Value: -1},
			},
			Options: options.Index().
				SetName("PatientReadingsByTime"),
		},
	})
	return err
}

func (r *repository) Create(ctx context.Context, reading Reading) (*Reading, error) {
	res, err := r.collection.InsertOne(ctx, reading)
	if err != nil {
		return nil, fmt.Errorf("error persisting reading: %w", err)
	}

	created := &Reading{}
	if err := r.collection.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(created); err != nil {
		return nil, fmt.Errorf("error retrieving created reading: %w", err)
	}
	return created, nil
}

func (r *repository) Query(ctx context.Context, patientId string, metric *Metric, start time.Time, end time.Time) ([]Reading, error) {
	selector := bson.M{
		"patientId": patientId,
		"timestamp": bson.M{
			"$gte": start,
			"$lt":  end,
		},
	}
	if metric != nil {
		selector[string(*metric)] = bson.M{"$exists": true}
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.collection.Find(ctx, selector, opts)
	if err != nil {
		return nil, fmt.Errorf("error querying readings: %w", err)
	}

	var result []Reading
	if err = cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("error decoding readings: %w", err)
	}
	return result, nil
}

func (r *repository) List(ctx context.Context, patientId string, pagination store.Pagination) ([]Reading, error) {
	opts := options.Find().
		SetLimit(int64(pagination.Limit)).
		SetSkip(int64(pagination.Offset)).
		SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"patientId": patientId}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing readings: %w", err)
	}

	var result []Reading
	if err = cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("error decoding readings list: %w", err)
	}
	return result, nil
}
