package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/ErwinJ1299/scout2-sub002/readings"
	"github.com/ErwinJ1299/scout2-sub002/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

const (
	alertsCollectionName = "health_alerts"
)

//go:generate mockgen --build_flags=--mod=mod -source=./repo.go -destination=./test/mock_repository.go -package test -aux_files=github.com/ErwinJ1299/scout2-sub002/alerts=alerts.go MockRepository

type Repository interface {
	Create(ctx context.Context, alert Alert) (*Alert, error)
	Get(ctx context.Context, alertId string) (*Alert, error)
	List(ctx context.Context, patientId string, status *Status, pagination store.Pagination) ([]Alert, error)
	HasActiveSince(ctx context.Context, patientId string, metric readings.Metric, since time.Time) (bool, error)
	Transition(ctx context.Context, alertId string, newStatus Status, actor string, notes *string) (*Alert, error)
}

func NewRepository(db *mongo.Database, lifecycle fx.Lifecycle) (Repository, error) {
	repo := &repository{
		collection: db.Collection(alertsCollectionName),
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
				{Key: "status", Value: 1},
				{Key: "triggerMetric", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().
				SetName("PatientAlertsByStatus"),
		},
	})
	return err
}

func (r *repository) Create(ctx context.Context, alert Alert) (*Alert, error) {
	res, err := r.collection.InsertOne(ctx, alert)
	if err != nil {
		return nil, fmt.Errorf("error persisting alert: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	alert.Id = &id
	return &alert, nil
}

func (r *repository) Get(ctx context.Context, alertId string) (*Alert, error) {
	alertObjId, err := primitive.ObjectIDFromHex(alertId)
	if err != nil {
		return nil, ErrNotFound
	}

	alert := &Alert{}
	err = r.collection.FindOne(ctx, bson.M{"_id": alertObjId}).Decode(alert)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error retrieving alert: %w", err)
	}
	return alert, nil
}

func (r *repository) List(ctx context.Context, patientId string, status *Status, pagination store.Pagination) ([]Alert, error) {
	selector := bson.M{"patientId": patientId}
	if status != nil {
		selector["status"] = *status
	}

	opts := options.Find().
		SetLimit(int64(pagination.Limit)).
		SetSkip(int64(pagination.Offset)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, selector, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing alerts: %w", err)
	}

	var result []Alert
	if err = cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("error decoding alerts list: %w", err)
	}
	return result, nil
}

func (r *repository) HasActiveSince(ctx context.Context, patientId string, metric readings.Metric, since time.Time) (bool, error) {
	selector := bson.M{
		"patientId":     patientId,
		"triggerMetric": metric,
		"status":        StatusActive,
		"createdAt":     bson.M{"$gte": since},
	}

	count, err := r.collection.CountDocuments(ctx, selector, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("error counting active alerts: %w", err)
	}
	return count > 0, nil
}

// Transition applies the status change with a status-guarded update so
// concurrent doctor actions cannot double-apply. The guard is derived from
// CanTransition, the single definition of the alert lifecycle.
func (r *repository) Transition(ctx context.Context, alertId string, newStatus Status, actor string, notes *string) (*Alert, error) {
	alertObjId, err := primitive.ObjectIDFromHex(alertId)
	if err != nil {
		return nil, ErrNotFound
	}

	var allowedFrom []Status
	for _, from := range []Status{StatusActive, StatusReviewed, StatusResolved} {
		if CanTransition(from, newStatus) {
			allowedFrom = append(allowedFrom, from)
		}
	}
	if len(allowedFrom) == 0 {
		return nil, ErrInvalidTransition
	}

	set := bson.M{"status": newStatus}
	now := time.Now()
	switch newStatus {
	case StatusReviewed:
		set["acknowledgedBy"] = actor
		set["acknowledgedAt"] = now
	case StatusResolved:
		set["resolvedBy"] = actor
		set["resolvedAt"] = now
	}
	if notes != nil {
		set["notes"] = *notes
	}

	selector := bson.M{
		"_id":    alertObjId,
		"status": bson.M{"$in": allowedFrom},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	alert := &Alert{}
	err = r.collection.FindOneAndUpdate(ctx, selector, bson.M{"$set": set}, opts).Decode(alert)
	if err == mongo.ErrNoDocuments {
		// Distinguish a missing alert from one in a non-admitting status.
		if _, getErr := r.Get(ctx, alertId); getErr != nil {
			return nil, getErr
		}
		return nil, ErrInvalidTransition
	} else if err != nil {
		return nil, fmt.Errorf("error transitioning alert: %w", err)
	}

	return alert, nil
}
