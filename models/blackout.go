package models

import "time"

// Blackout is an administrator-declared unavailable window, independent
// of reservations. It may span multiple days.
type Blackout struct {
	ID        string    `bson:"id" json:"id"`
	RoomID    string    `bson:"room_id" json:"roomId"`
	Start     time.Time `bson:"start" json:"start"`
	End       time.Time `bson:"end" json:"end"`
	Reason    string    `bson:"reason" json:"reason"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
