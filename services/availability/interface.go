package availability

import (
	"context"
	"time"

	blackoutRepo "roomly/database/repository/blackout"
	reservationRepo "roomly/database/repository/reservation"
	roomRepo "roomly/database/repository/room"
	"roomly/models"

	"github.com/go-redis/redis/v8"
)

// Service answers the two read-only availability queries. Both are pure
// functions of (policy, conflicts, date, now) once the repositories have
// been consulted; the evaluation instant is always passed in explicitly
// so results are deterministic and testable.
type Service interface {
	// DaySlots computes the bookable start points, the legal end points
	// per start, and per-slot blocking reasons for one room and date.
	DaySlots(ctx context.Context, roomID, date string, now time.Time) (*models.DaySlotsResponse, error)
	// Calendar computes whole-day restrictions for every date of a month.
	Calendar(ctx context.Context, roomID string, year int, month time.Month, now time.Time) (*models.CalendarResponse, error)
}

// DefaultAvailabilityService is the production implementation.
type DefaultAvailabilityService struct {
	RoomRepo        roomRepo.RoomRepository
	ReservationRepo reservationRepo.ReservationRepository
	BlackoutRepo    blackoutRepo.BlackoutRepository
	// Cache is optional; when nil every query recomputes.
	Cache *redis.Client
	// CacheTTL bounds staleness of cached responses.
	CacheTTL time.Duration
}
