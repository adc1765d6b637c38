package rewards

import (
	"context"
	"fmt"
	"time"

	"github.com/ErwinJ1299/scout2-sub002/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

const (
	rewardsCollectionName = "outcome_rewards"
)

//go:generate mockgen --build_flags=--mod=mod -source=./repo.go -destination=./test/mock_repository.go -package test MockRepository

type Repository interface {
	LastGrant(ctx context.Context, userId string, ruleId string) (*time.Time, error)
	Insert(ctx context.Context, reward Reward) (*Reward, error)
	List(ctx context.Context, userId string, pagination store.Pagination) ([]Reward, error)
}

func NewRepository(db *mongo.Database, lifecycle fx.Lifecycle) (Repository, error) {
	repo := &repository{
		collection: db.Collection(rewardsCollectionName),
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
				{Key: "ruleId", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().
				SetName("UserRuleGrants"),
		},
	})
	return err
}

// LastGrant returns the creation time of the most recent reward for the
// (user, rule) pair, or nil when none has ever been granted.
func (r *repository) LastGrant(ctx context.Context, userId string, ruleId string) (*time.Time, error) {
	ruleObjId, err := primitive.ObjectIDFromHex(ruleId)
	if err != nil {
		return nil, nil
	}

	selector := bson.M{
		"userId": userId,
		"ruleId": ruleObjId,
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	reward := &Reward{}
	err = r.collection.FindOne(ctx, selector, opts).Decode(reward)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("error retrieving last grant: %w", err)
	}

	return &reward.CreatedAt, nil
}

func (r *repository) Insert(ctx context.Context, reward Reward) (*Reward, error) {
	res, err := r.collection.InsertOne(ctx, reward)
	if err != nil {
		return nil, fmt.Errorf("error persisting reward: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	reward.Id = &id
	return &reward, nil
}

func (r *repository) List(ctx context.Context, userId string, pagination store.Pagination) ([]Reward, error) {
	opts := options.Find().
		SetLimit(int64(pagination.Limit)).
		SetSkip(int64(pagination.Offset)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userId}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing rewards: %w", err)
	}

	var result []Reward
	if err = cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("error decoding rewards list: %w", err)
	}
	return result, nil
}
