// File: database/repository/blackout/crud.go
package blackoutRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"roomly/models"
)

func (r *mongoBlackoutRepo) Create(ctx context.Context, blackout *models.Blackout) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if blackout.ID == "" {
		blackout.ID = uuid.New().String()
	}
	if blackout.CreatedAt.IsZero() {
		blackout.CreatedAt = time.Now()
	}

	if _, err := r.coll.InsertOne(ctx, blackout); err != nil {
		return fmt.Errorf("failed to insert blackout: %w", err)
	}
	return nil
}

func (r *mongoBlackoutRepo) Delete(ctx context.Context, blackoutID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": blackoutID})
	if err != nil {
		return fmt.Errorf("failed to delete blackout: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrBlackoutNotFound
	}
	return nil
}

func (r *mongoBlackoutRepo) GetOverlappingRange(ctx context.Context, roomID string, from, to time.Time) ([]models.Blackout, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Half-open overlap: blackout.start < to AND blackout.end > from.
	filter := bson.M{
		"room_id": roomID,
		"start":   bson.M{"$lt": to},
		"end":     bson.M{"$gt": from},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blackouts: %w", err)
	}
	defer cursor.Close(ctx)

	var blackouts []models.Blackout
	if err := cursor.All(ctx, &blackouts); err != nil {
		return nil, fmt.Errorf("error decoding blackouts: %w", err)
	}
	return blackouts, nil
}
