package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nuttee/meetgate/internal/ports"
)

// stubRoomService records mint and list calls.
type stubRoomService struct {
	issueErr error
	listErr  error
	rooms    []*ports.RoomSummary

	mintCalls []mintCall
	listCalls int
}

type mintCall struct {
	room     string
	identity string
}

func (s *stubRoomService) IssueToken(ctx context.Context, roomName, identity string) (*ports.AccessToken, error) {
	s.mintCalls = append(s.mintCalls, mintCall{room: roomName, identity: identity})
	if s.issueErr != nil {
		return nil, s.issueErr
	}
	return &ports.AccessToken{Token: "signed-" + roomName + "-" + identity, ExpiresAt: 1893456000}, nil
}

func (s *stubRoomService) ListRooms(ctx context.Context) ([]*ports.RoomSummary, error) {
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.rooms, nil
}

func TestGetToken_MintsForRoomAndIdentity(t *testing.T) {
	stub := &stubRoomService{}
	handler := NewLiveKitHandler(stub, false)

	req := httptest.NewRequest("GET", "/livekit/token?room=standup&username=alice", nil)
	rr := httptest.NewRecorder()
	handler.GetToken(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected non-empty token")
	}

	if len(stub.mintCalls) != 1 {
		t.Fatalf("expected 1 mint call, got %d", len(stub.mintCalls))
	}
	if stub.mintCalls[0].room != "standup" || stub.mintCalls[0].identity != "alice" {
		t.Errorf("expected mint call for (standup, alice), got %+v", stub.mintCalls[0])
	}
}

func TestGetToken_MissingParams(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"missing room", "/livekit/token?username=alice"},
		{"missing username", "/livekit/token?room=standup"},
		{"missing both", "/livekit/token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubRoomService{}
			handler := NewLiveKitHandler(stub, false)

			req := httptest.NewRequest("GET", tt.url, nil)
			rr := httptest.NewRecorder()
			handler.GetToken(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rr.Code)
			}
			if len(stub.mintCalls) != 0 {
				t.Errorf("expected no mint calls, got %d", len(stub.mintCalls))
			}
		})
	}
}

func TestGetToken_UpstreamError(t *testing.T) {
	stub := &stubRoomService{issueErr: errors.New("bad credentials")}
	handler := NewLiveKitHandler(stub, false)

	req := httptest.NewRequest("GET", "/livekit/token?room=standup&username=alice", nil)
	rr := httptest.NewRecorder()
	handler.GetToken(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rr.Code)
	}
}

func TestGetToken_NotConfigured(t *testing.T) {
	handler := NewLiveKitHandler(nil, false)

	req := httptest.NewRequest("GET", "/livekit/token?room=standup&username=alice", nil)
	rr := httptest.NewRecorder()
	handler.GetToken(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rr.Code)
	}
}

func TestGetToken_RequireAuthUsesIdentityClaim(t *testing.T) {
	stub := &stubRoomService{}
	handler := NewLiveKitHandler(stub, true)

	// Claimed username in the query must not win over the authenticated
	// identity.
	req := httptest.NewRequest("GET", "/livekit/token?room=standup&username=mallory", nil)
	req = req.WithContext(SetIdentityInContext(req.Context(), "alice"))
	rr := httptest.NewRecorder()
	handler.GetToken(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if len(stub.mintCalls) != 1 || stub.mintCalls[0].identity != "alice" {
		t.Errorf("expected mint for authenticated identity alice, got %+v", stub.mintCalls)
	}
}

func TestGetToken_RequireAuthRejectsAnonymous(t *testing.T) {
	stub := &stubRoomService{}
	handler := NewLiveKitHandler(stub, true)

	req := httptest.NewRequest("GET", "/livekit/token?room=standup&username=alice", nil)
	rr := httptest.NewRecorder()
	handler.GetToken(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
	if len(stub.mintCalls) != 0 {
		t.Errorf("expected no mint calls, got %d", len(stub.mintCalls))
	}
}

func TestGetRooms_PreservesFields(t *testing.T) {
	stub := &stubRoomService{rooms: []*ports.RoomSummary{
		{SID: "RM_1", Name: "standup", NumParticipants: 3, CreationTime: 1700000000},
		{SID: "RM_2", Name: "retro", NumParticipants: 0, CreationTime: 1700000100},
	}}
	handler := NewLiveKitHandler(stub, false)

	req := httptest.NewRequest("GET", "/livekit/rooms", nil)
	rr := httptest.NewRecorder()
	handler.GetRooms(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var rooms []map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&rooms); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(rooms))
	}
	if rooms[0]["name"] != "standup" {
		t.Errorf("expected name standup, got %v", rooms[0]["name"])
	}
	if rooms[0]["numParticipants"] != float64(3) {
		t.Errorf("expected numParticipants 3, got %v", rooms[0]["numParticipants"])
	}
	if rooms[1]["sid"] != "RM_2" || rooms[1]["creationTime"] != float64(1700000100) {
		t.Errorf("unexpected second room: %v", rooms[1])
	}
	if stub.listCalls != 1 {
		t.Errorf("expected 1 list call, got %d", stub.listCalls)
	}
}

func TestGetRooms_EmptyListIsJSONArray(t *testing.T) {
	stub := &stubRoomService{}
	handler := NewLiveKitHandler(stub, false)

	req := httptest.NewRequest("GET", "/livekit/rooms", nil)
	rr := httptest.NewRecorder()
	handler.GetRooms(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if body := rr.Body.String(); body != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", body)
	}
}

func TestGetRooms_UpstreamError(t *testing.T) {
	stub := &stubRoomService{listErr: errors.New("connection refused")}
	handler := NewLiveKitHandler(stub, false)

	req := httptest.NewRequest("GET", "/livekit/rooms", nil)
	rr := httptest.NewRecorder()
	handler.GetRooms(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rr.Code)
	}
}

func TestClientConfig(t *testing.T) {
	handler := NewClientConfigHandler("wss://livekit.example.com")

	req := httptest.NewRequest("GET", "/livekit/config", nil)
	rr := httptest.NewRecorder()
	handler.Get(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["url"] != "wss://livekit.example.com" {
		t.Errorf("expected public URL, got %v", resp["url"])
	}
}
