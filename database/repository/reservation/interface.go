// File: database/repository/reservation/interface.go
package reservationRepo

import (
	"context"
	"errors"
	"time"

	"roomly/database"
	"roomly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrReservationNotFound is returned when no reservation matches the id.
	ErrReservationNotFound = errors.New("reservation not found")
	// ErrStatusConflict is returned when a status transition races with
	// another writer and the expected current status no longer holds.
	ErrStatusConflict = errors.New("reservation status changed concurrently")
)

type ReservationRepository interface {
	Create(ctx context.Context, res *models.Reservation) error
	GetByID(ctx context.Context, reservationID string) (*models.Reservation, error)
	// GetCommittedByDate returns the pending and confirmed reservations
	// for a room on a date, ordered by start time. Cancelled, rejected and
	// expired reservations never conflict. Both the slot query and the
	// insert-time conflict re-check read through this.
	GetCommittedByDate(ctx context.Context, roomID, date string) ([]models.Reservation, error)
	// UpdateStatus transitions a reservation from one status to another
	// atomically; ErrStatusConflict if the current status is not `from`.
	UpdateStatus(ctx context.Context, reservationID string, from, to models.ReservationStatus) error
	// ExpirePending marks a pending reservation expired if its hold
	// deadline has passed at `now`. Returns ErrStatusConflict if the
	// reservation is no longer pending, nil if it was expired.
	ExpirePending(ctx context.Context, reservationID string, now time.Time) error
	EnsureIndexes() error
}

type mongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo constructs a new MongoDB ReservationRepository.
func NewMongoReservationRepo() ReservationRepository {
	db := database.MongoClient.Database("roomly")
	return &mongoReservationRepo{
		coll: db.Collection("reservations"),
	}
}
