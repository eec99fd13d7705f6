// File: database/repository/room/interface.go
package roomRepo

import (
	"context"
	"errors"

	"roomly/database"
	"roomly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrRoomNotFound is returned when no room matches the given identifier.
var ErrRoomNotFound = errors.New("room not found")

type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	GetByID(ctx context.Context, roomID string) (*models.Room, error)
	List(ctx context.Context) ([]models.Room, error)
	UpdatePolicy(ctx context.Context, roomID string, policy *models.AvailabilityPolicy) error
	Delete(ctx context.Context, roomID string) error
	EnsureIndexes() error
}

type mongoRoomRepo struct {
	coll *mongo.Collection
}

// NewMongoRoomRepo constructs a new MongoDB RoomRepository.
func NewMongoRoomRepo() RoomRepository {
	db := database.MongoClient.Database("roomly")
	return &mongoRoomRepo{
		coll: db.Collection("rooms"),
	}
}
