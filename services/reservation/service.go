package reservation

import (
	"context"
	"fmt"
	"time"

	blackoutRepo "roomly/database/repository/blackout"
	reservationRepo "roomly/database/repository/reservation"
	roomRepo "roomly/database/repository/room"
	"roomly/models"
	"roomly/services/availability"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CreateRequest is the write-path input. Start and End are "HH:mm"
// boundary strings as returned by the slot query.
type CreateRequest struct {
	RoomID string `json:"roomId" binding:"required"`
	UserID string `json:"userId" binding:"required"`
	Date   string `json:"date" binding:"required"`
	Start  string `json:"start" binding:"required"`
	End    string `json:"end" binding:"required"`
}

// ExpiryEnqueuer schedules the release of a pending reservation's hold.
type ExpiryEnqueuer interface {
	EnqueueExpiry(ctx context.Context, reservationID string, at time.Time) error
}

// Service owns the reservation write path. The availability engine is
// advisory only; this service performs the authoritative conflict
// re-check at commit time, against the same conflict definition the
// engine evaluates, and rejects the write when a race is detected.
type Service interface {
	Create(ctx context.Context, req CreateRequest, now time.Time) (*models.Reservation, error)
	Confirm(ctx context.Context, reservationID string) (*models.Reservation, error)
	Cancel(ctx context.Context, reservationID string) (*models.Reservation, error)
	Expire(ctx context.Context, reservationID string, now time.Time) error
}

// DefaultReservationService is the production implementation.
type DefaultReservationService struct {
	RoomRepo        roomRepo.RoomRepository
	ReservationRepo reservationRepo.ReservationRepository
	BlackoutRepo    blackoutRepo.BlackoutRepository
	Cache           *redis.Client
	Enqueuer        ExpiryEnqueuer
	// HoldFor is how long a pending reservation keeps its interval
	// before the expiry worker releases it.
	HoldFor time.Duration
}

func (s *DefaultReservationService) Create(ctx context.Context, req CreateRequest, now time.Time) (*models.Reservation, error) {
	day, err := time.ParseInLocation("2006-01-02", req.Date, now.Location())
	if err != nil {
		return nil, NewInvalidInputError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", req.Date))
	}
	startMin, err := models.ParseClock(req.Start)
	if err != nil {
		return nil, NewInvalidInputError(err.Error())
	}
	endMin, err := models.ParseClock(req.End)
	if err != nil {
		return nil, NewInvalidInputError(err.Error())
	}
	if startMin%availability.GranularityMins != 0 || endMin%availability.GranularityMins != 0 {
		return nil, NewInvalidInputError(fmt.Sprintf("times must align to the %d-minute grid", availability.GranularityMins))
	}
	if endMin <= startMin {
		return nil, NewInvalidInputError("end must be after start")
	}

	room, err := s.RoomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if err == roomRepo.ErrRoomNotFound {
			return nil, NewNotFoundError(fmt.Sprintf("room %q not found", req.RoomID))
		}
		return nil, fmt.Errorf("failed to resolve room %q: %w", req.RoomID, err)
	}
	policy := room.Policy
	if policy == nil {
		return nil, NewRestrictedError("room has no availability configuration")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return nil, NewInvalidInputError("cannot reserve a past date")
	}
	if day.After(today.AddDate(0, 0, policy.AdvanceBookingDays)) {
		return nil, NewRestrictedError(fmt.Sprintf("bookings can be made at most %d days in advance", policy.AdvanceBookingDays))
	}
	if day.Equal(today) && !policy.SameDayBooking {
		return nil, NewRestrictedError("same-day booking is disabled for this room")
	}
	hours := policy.Hours.For(day.Weekday())
	if !hours.Enabled {
		return nil, NewRestrictedError(fmt.Sprintf("room is closed on %ss", models.WeekdayName(day.Weekday())))
	}
	if startMin < hours.Open || endMin > hours.Close {
		return nil, NewRestrictedError(fmt.Sprintf("requested interval is outside operating hours %s-%s",
			models.FormatClock(hours.Open), models.FormatClock(hours.Close)))
	}
	duration := endMin - startMin
	if duration < policy.MinDurationMins || duration > policy.MaxDurationMins {
		return nil, NewRestrictedError(fmt.Sprintf("duration must be between %d and %d minutes",
			policy.MinDurationMins, policy.MaxDurationMins))
	}

	if err := s.checkConflicts(ctx, room.ID, day, startMin, endMin, policy.BufferMins); err != nil {
		return nil, err
	}

	res := &models.Reservation{
		RoomID:    room.ID,
		UserID:    req.UserID,
		Date:      day.Format("2006-01-02"),
		StartMin:  startMin,
		EndMin:    endMin,
		Status:    models.ReservationPending,
		CreatedAt: now,
		ExpiresAt: now.Add(s.holdFor()),
	}
	if err := s.ReservationRepo.Create(ctx, res); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	if s.Enqueuer != nil {
		if err := s.Enqueuer.EnqueueExpiry(ctx, res.ID, res.ExpiresAt); err != nil {
			// The hold still expires on read paths via ExpiresAt; log and move on.
			zap.L().Warn("failed to enqueue reservation expiry",
				zap.String("reservationID", res.ID), zap.Error(err))
		}
	}

	availability.InvalidateRoomCache(ctx, s.Cache, room.ID)
	return res, nil
}

// checkConflicts is the authoritative insert-time overlap check. It
// re-fetches the day's committed intervals and evaluates the requested
// interval under exactly the rules the slot query advertises options
// with, so an advertised option is only ever rejected when a race
// actually took it. In particular, a booking may end exactly where an
// existing conflict starts.
func (s *DefaultReservationService) checkConflicts(ctx context.Context, roomID string, day time.Time, startMin, endMin, bufferMins int) error {
	dateStr := day.Format("2006-01-02")

	reservations, err := s.ReservationRepo.GetCommittedByDate(ctx, roomID, dateStr)
	if err != nil {
		return fmt.Errorf("conflict re-check failed: %w", err)
	}
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	blackouts, err := s.BlackoutRepo.GetOverlappingRange(ctx, roomID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return fmt.Errorf("conflict re-check failed: %w", err)
	}

	conflicts := availability.NormalizeConflicts(reservations, blackouts, day)
	reason := availability.IntervalBlockReason(conflicts, startMin, endMin, bufferMins)
	switch {
	case reason == nil:
		return nil
	case *reason == models.ReasonBlackout:
		return NewConflictError("the requested interval overlaps a blackout period")
	default:
		return NewConflictError("the requested interval is no longer available")
	}
}

func (s *DefaultReservationService) Confirm(ctx context.Context, reservationID string) (*models.Reservation, error) {
	err := s.ReservationRepo.UpdateStatus(ctx, reservationID, models.ReservationPending, models.ReservationConfirmed)
	if err != nil {
		switch err {
		case reservationRepo.ErrReservationNotFound:
			return nil, NewNotFoundError(fmt.Sprintf("reservation %q not found", reservationID))
		case reservationRepo.ErrStatusConflict:
			return nil, NewConflictError("only a pending reservation can be confirmed")
		}
		return nil, err
	}
	return s.ReservationRepo.GetByID(ctx, reservationID)
}

func (s *DefaultReservationService) Cancel(ctx context.Context, reservationID string) (*models.Reservation, error) {
	err := s.ReservationRepo.UpdateStatus(ctx, reservationID, models.ReservationPending, models.ReservationCancelled)
	if err == reservationRepo.ErrStatusConflict {
		err = s.ReservationRepo.UpdateStatus(ctx, reservationID, models.ReservationConfirmed, models.ReservationCancelled)
	}
	if err != nil {
		switch err {
		case reservationRepo.ErrReservationNotFound:
			return nil, NewNotFoundError(fmt.Sprintf("reservation %q not found", reservationID))
		case reservationRepo.ErrStatusConflict:
			return nil, NewConflictError("reservation is already resolved")
		}
		return nil, err
	}

	res, err := s.ReservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	availability.InvalidateRoomCache(ctx, s.Cache, res.RoomID)
	return res, nil
}

// Expire releases a pending reservation whose hold deadline has passed.
// Called by the background worker; a reservation that was confirmed or
// cancelled in the meantime is left untouched.
func (s *DefaultReservationService) Expire(ctx context.Context, reservationID string, now time.Time) error {
	err := s.ReservationRepo.ExpirePending(ctx, reservationID, now)
	if err == reservationRepo.ErrStatusConflict || err == reservationRepo.ErrReservationNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	res, getErr := s.ReservationRepo.GetByID(ctx, reservationID)
	if getErr == nil {
		availability.InvalidateRoomCache(ctx, s.Cache, res.RoomID)
	}
	return nil
}

func (s *DefaultReservationService) holdFor() time.Duration {
	if s.HoldFor > 0 {
		return s.HoldFor
	}
	return 15 * time.Minute
}
