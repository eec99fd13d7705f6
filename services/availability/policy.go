package availability

import (
	"context"
	"fmt"

	roomRepo "roomly/database/repository/room"

	"roomly/models"
)

// notConfiguredError is the diagnostic surfaced when a room has no
// availability policy. An unconfigured room is fully unavailable for
// every date: "no data" must never read as "open all day".
const notConfiguredError = "room has no availability configuration"

// resolveRoom loads the room, translating a missing room into a caller
// error. The returned room's Policy may be nil, which callers must
// treat as fail-closed.
func (s *DefaultAvailabilityService) resolveRoom(ctx context.Context, roomID string) (*models.Room, error) {
	if roomID == "" {
		return nil, NewInvalidInputError("room id is required")
	}
	room, err := s.RoomRepo.GetByID(ctx, roomID)
	if err != nil {
		if err == roomRepo.ErrRoomNotFound {
			return nil, NewNotFoundError(fmt.Sprintf("room %q not found", roomID))
		}
		return nil, fmt.Errorf("failed to resolve room %q: %w", roomID, err)
	}
	return room, nil
}
