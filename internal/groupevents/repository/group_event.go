package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	groupeventerrors "groupcal/internal/groupevents/errors"
	"groupcal/pkg/config"
	mongotx "groupcal/pkg/db/mongo"
	"groupcal/pkg/model"
)

const (
	CollectionName = "Group_events"
)

type mongoGroupEventRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type GroupEventRepository interface {
	Create(ctx context.Context, ge *model.GroupEvent) error
	FindByID(ctx context.Context, id string) (*model.GroupEvent, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.GroupEvent, error)
	Update(ctx context.Context, id string, ge *model.GroupEvent) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoGroupEventRepository(cfg *config.Config) GroupEventRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoGroupEventRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout unless already inside a
// transaction: a SessionContext cannot be wrapped without breaking
// transaction semantics, so it is returned unchanged with a no-op cancel.
func (r *mongoGroupEventRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoGroupEventRepository) Create(ctx context.Context, ge *model.GroupEvent) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	ge.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, ge)
	if err != nil {
		return fmt.Errorf("failed to create group event: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		ge.ID = oid.Hex()
	}
	return nil
}

func (r *mongoGroupEventRepository) FindByID(ctx context.Context, id string) (*model.GroupEvent, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", groupeventerrors.ErrInvalidID, id)
	}

	var ge model.GroupEvent
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&ge)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", groupeventerrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find group event: %w", err)
	}

	return &ge, nil
}

func (r *mongoGroupEventRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.GroupEvent, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query group events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []*model.GroupEvent
	if err = cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode group events: %w", err)
	}
	return events, nil
}

func (r *mongoGroupEventRepository) Update(ctx context.Context, id string, ge *model.GroupEvent) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", groupeventerrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":            ge.Name,
			"description":     ge.Description,
			"owner_id":        ge.OwnerID,
			"participant_ids": ge.ParticipantIDs,
			"status":          ge.Status,
			"date":            ge.Date,
			"start_time":      ge.StartTime,
			"end_time":        ge.EndTime,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update group event: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: %s", groupeventerrors.ErrNotFound, id)
	}
	return result, nil
}

func (r *mongoGroupEventRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", groupeventerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete group event: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", groupeventerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoGroupEventRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count group events: %w", err)
	}
	return count, nil
}

func (r *mongoGroupEventRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
