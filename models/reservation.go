package models

import "time"

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationRejected  ReservationStatus = "rejected"
	ReservationExpired   ReservationStatus = "expired"
)

// Blocks reports whether a reservation in this status occupies its
// interval. Pending and confirmed reservations block identically; an
// unapproved pending therefore holds its slot until it is resolved or
// expires.
func (s ReservationStatus) Blocks() bool {
	return s == ReservationPending || s == ReservationConfirmed
}

// Reservation is a committed booking of a room interval.
// Start and End are minutes from midnight on Date; the interval is
// half-open [Start, End).
type Reservation struct {
	ID        string            `bson:"id" json:"id"`
	RoomID    string            `bson:"room_id" json:"roomId"`
	UserID    string            `bson:"user_id" json:"userId"`
	Date      string            `bson:"date" json:"date"` // "2006-01-02"
	StartMin  int               `bson:"start" json:"start"`
	EndMin    int               `bson:"end" json:"end"`
	Status    ReservationStatus `bson:"status" json:"status"`
	CreatedAt time.Time         `bson:"created_at" json:"createdAt"`
	// ExpiresAt is when a pending reservation releases its hold.
	ExpiresAt time.Time `bson:"expires_at,omitempty" json:"expiresAt,omitempty"`
}
