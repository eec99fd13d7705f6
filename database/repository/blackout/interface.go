// File: database/repository/blackout/interface.go
package blackoutRepo

import (
	"context"
	"errors"
	"time"

	"roomly/database"
	"roomly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrBlackoutNotFound is returned when no blackout matches the given id.
var ErrBlackoutNotFound = errors.New("blackout not found")

type BlackoutRepository interface {
	Create(ctx context.Context, blackout *models.Blackout) error
	Delete(ctx context.Context, blackoutID string) error
	// GetOverlappingRange returns blackout windows for the room that
	// overlap the half-open [from, to), ordered by start.
	GetOverlappingRange(ctx context.Context, roomID string, from, to time.Time) ([]models.Blackout, error)
	EnsureIndexes() error
}

type mongoBlackoutRepo struct {
	coll *mongo.Collection
}

// NewMongoBlackoutRepo constructs a new MongoDB BlackoutRepository.
func NewMongoBlackoutRepo() BlackoutRepository {
	db := database.MongoClient.Database("roomly")
	return &mongoBlackoutRepo{
		coll: db.Collection("blackouts"),
	}
}
