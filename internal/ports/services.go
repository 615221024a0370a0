package ports

import "context"

// AccessToken is a signed capability string granting join/publish/subscribe
// rights to a named room for a named identity. It is meaningful only to the
// LiveKit server, which validates signature and expiry; meetgate never
// stores it.
type AccessToken struct {
	Token     string
	ExpiresAt int64
}

// RoomSummary is a snapshot of one active room as reported by LiveKit.
type RoomSummary struct {
	SID             string
	Name            string
	NumParticipants uint32
	CreationTime    int64
}

// RoomService is the contract against the LiveKit backend consumed by the
// HTTP handlers. Tests substitute a recording stub.
type RoomService interface {
	// IssueToken mints a fresh join+publish+subscribe token scoped to
	// roomName and bound to identity. Both must be non-empty.
	IssueToken(ctx context.Context, roomName, identity string) (*AccessToken, error)

	// ListRooms returns the rooms currently active on the LiveKit server.
	// The result is an uncached snapshot valid only at the instant of the
	// call.
	ListRooms(ctx context.Context) ([]*RoomSummary, error)
}
