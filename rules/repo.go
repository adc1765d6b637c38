package rules

import (
	"context"
	"fmt"
	"time"

	"github.com/ErwinJ1299/scout2-sub002/pointer"
	"github.com/ErwinJ1299/scout2-sub002/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

const (
	rulesCollectionName = "outcome_rules"
)

//go:generate mockgen --build_flags=--mod=mod -source=./repo.go -destination=./test/mock_repository.go -package test -aux_files=github.com/ErwinJ1299/scout2-sub002/rules=rules.go MockRepository

type Repository interface {
	Service
}

func NewRepository(db *mongo.Database, lifecycle fx.Lifecycle) (Repository, error) {
	repo := &repository{
		collection: db.Collection(rulesCollectionName),
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
				{Key: "active", Value: 1},
				{Key: "metric", Value: 1},
			},
			Options: options.Index().
				SetName("ActiveRulesByMetric"),
		},
	})
	return err
}

func (r *repository) Create(ctx context.Context, rule Rule) (*Rule, error) {
	rule.CreatedAt = pointer.FromAny(time.Now())
	rule.UpdatedAt = rule.CreatedAt

	res, err := r.collection.InsertOne(ctx, rule)
	if err != nil {
		return nil, fmt.Errorf("error persisting rule: %w", err)
	}

	return r.get(ctx, res.InsertedID.(primitive.ObjectID))
}

func (r *repository) Update(ctx context.Context, ruleId string, rule Rule) (*Rule, error) {
	ruleObjId, err := primitive.ObjectIDFromHex(ruleId)
	if err != nil {
		return nil, ErrNotFound
	}

	rule.Id = nil
	rule.CreatedAt = nil
	rule.UpdatedAt = pointer.FromAny(time.Now())

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": ruleObjId}, bson.M{"$set": rule})
	if err != nil {
		return nil, fmt.Errorf("error updating rule: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	return r.get(ctx, ruleObjId)
}

func (r *repository) Get(ctx context.Context, ruleId string) (*Rule, error) {
	ruleObjId, err := primitive.ObjectIDFromHex(ruleId)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.get(ctx, ruleObjId)
}

func (r *repository) get(ctx context.Context, ruleObjId primitive.ObjectID) (*Rule, error) {
	rule := &Rule{}
	err := r.collection.FindOne(ctx, bson.M{"_id": ruleObjId}).Decode(rule)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error retrieving rule: %w", err)
	}
	return rule, nil
}

func (r *repository) ListActive(ctx context.Context) ([]Rule, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, fmt.Errorf("error listing active rules: %w", err)
	}

	var result []Rule
	if err = cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("error decoding active rules: %w", err)
	}
	return result, nil
}

func (r *repository) List(ctx context.Context, pagination store.Pagination) ([]Rule, error) {
	opts := options.Find().
		SetLimit(int64(pagination.Limit)).
		SetSkip(int64(pagination.Offset)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing rules: %w", err)
	}

	var result []Rule
	if err = cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("error decoding rules list: %w", err)
	}
	return result, nil
}

func (r *repository) SetActive(ctx context.Context, ruleId string, active bool) (*Rule, error) {
	ruleObjId, err := primitive.ObjectIDFromHex(ruleId)
	if err != nil {
		return nil, ErrNotFound
	}

	update := bson.M{
		"$set": bson.M{
			"active":    active,
			"updatedAt": time.Now(),
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": ruleObjId}, update)
	if err != nil {
		return nil, fmt.Errorf("error updating rule active flag: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	return r.get(ctx, ruleObjId)
}
