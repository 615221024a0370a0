package livekit

import (
	"context"
	"fmt"
	"time"

	"github.com/livekit/protocol/auth"
	lkproto "github.com/livekit/protocol/livekit"
	lksdk "github.com/livekit/server-sdk-go/v2"

	"github.com/nuttee/meetgate/internal/config"
	"github.com/nuttee/meetgate/internal/ports"
)

// Service bridges meetgate to a LiveKit deployment: it signs access tokens
// locally with the API key/secret and queries the room service for the live
// room list. It holds no state of its own; all authoritative room and
// participant state lives in LiveKit.
type Service struct {
	cfg        config.LiveKitConfig
	roomClient *lksdk.RoomServiceClient
}

// NewService validates the LiveKit configuration and constructs the service.
func NewService(cfg config.LiveKitConfig) (*Service, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("LiveKit URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("LiveKit API key is required")
	}
	if cfg.APISecret == "" {
		return nil, fmt.Errorf("LiveKit API secret is required")
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = 6 * time.Hour
	}

	return &Service{
		cfg:        cfg,
		roomClient: lksdk.NewRoomServiceClient(cfg.URL, cfg.APIKey, cfg.APISecret),
	}, nil
}

// IssueToken mints a signed token granting join, publish and subscribe on
// roomName for identity. Rooms are not provisioned here; LiveKit creates
// them lazily when the first participant connects.
func (s *Service) IssueToken(ctx context.Context, roomName, identity string) (*ports.AccessToken, error) {
	if roomName == "" {
		return nil, fmt.Errorf("room name is required")
	}
	if identity == "" {
		return nil, fmt.Errorf("participant identity is required")
	}

	at := auth.NewAccessToken(s.cfg.APIKey, s.cfg.APISecret)
	canPublish := true
	canSubscribe := true
	grant := &auth.VideoGrant{
		RoomJoin:     true,
		Room:         roomName,
		CanPublish:   &canPublish,
		CanSubscribe: &canSubscribe,
	}

	at.SetVideoGrant(grant).
		SetIdentity(identity).
		SetName(identity).
		SetValidFor(s.cfg.TokenTTL)

	token, err := at.ToJWT()
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &ports.AccessToken{
		Token:     token,
		ExpiresAt: time.Now().Add(s.cfg.TokenTTL).Unix(),
	}, nil
}

// ListRooms returns the rooms currently active on the LiveKit server,
// mapped field-for-field with no caching.
func (s *Service) ListRooms(ctx context.Context) ([]*ports.RoomSummary, error) {
	resp, err := s.roomClient.ListRooms(ctx, &lkproto.ListRoomsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	rooms := resp.GetRooms()
	result := make([]*ports.RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		result = append(result, &ports.RoomSummary{
			SID:             room.Sid,
			Name:            room.Name,
			NumParticipants: room.NumParticipants,
			CreationTime:    room.CreationTime,
		})
	}

	return result, nil
}
