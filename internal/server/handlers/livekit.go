package handlers

import (
	"net/http"

	"github.com/nuttee/meetgate/internal/metrics"
	"github.com/nuttee/meetgate/internal/ports"
)

// LiveKitHandler serves the token and room-directory endpoints.
type LiveKitHandler struct {
	rooms ports.RoomService
	// requireAuth makes the minted identity come from the authenticated
	// claim instead of the query string. Off by default: the original
	// surface is deliberately open, any caller can obtain a token for any
	// room under any name.
	requireAuth bool
}

// NewLiveKitHandler creates a handler over the given room service.
func NewLiveKitHandler(rooms ports.RoomService, requireAuth bool) *LiveKitHandler {
	return &LiveKitHandler{rooms: rooms, requireAuth: requireAuth}
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

type roomSummaryResponse struct {
	SID             string `json:"sid"`
	Name            string `json:"name"`
	NumParticipants uint32 `json:"numParticipants"`
	CreationTime    int64  `json:"creationTime"`
}

// GetToken handles GET /livekit/token?room=<name>&username=<identity>
func (h *LiveKitHandler) GetToken(w http.ResponseWriter, r *http.Request) {
	if h.rooms == nil {
		respondError(w, "LiveKit not configured", http.StatusServiceUnavailable)
		return
	}

	room := r.URL.Query().Get("room")
	identity := r.URL.Query().Get("username")

	if h.requireAuth {
		claim := IdentityFromContext(r.Context())
		if claim == "" {
			respondError(w, "authentication required", http.StatusUnauthorized)
			return
		}
		identity = claim
	}

	if room == "" {
		respondError(w, "room is required", http.StatusBadRequest)
		return
	}
	if identity == "" {
		respondError(w, "username is required", http.StatusBadRequest)
		return
	}

	token, err := h.rooms.IssueToken(r.Context(), room, identity)
	if err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues("issue_token").Inc()
		respondError(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	metrics.TokensIssuedTotal.Inc()
	respondJSON(w, tokenResponse{Token: token.Token, ExpiresAt: token.ExpiresAt}, http.StatusOK)
}

// GetRooms handles GET /livekit/rooms
func (h *LiveKitHandler) GetRooms(w http.ResponseWriter, r *http.Request) {
	if h.rooms == nil {
		respondError(w, "LiveKit not configured", http.StatusServiceUnavailable)
		return
	}

	rooms, err := h.rooms.ListRooms(r.Context())
	if err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues("list_rooms").Inc()
		respondError(w, "failed to list rooms", http.StatusInternalServerError)
		return
	}

	// Empty directory must encode as [], not null.
	result := make([]roomSummaryResponse, 0, len(rooms))
	for _, room := range rooms {
		result = append(result, roomSummaryResponse{
			SID:             room.SID,
			Name:            room.Name,
			NumParticipants: room.NumParticipants,
			CreationTime:    room.CreationTime,
		})
	}

	respondJSON(w, result, http.StatusOK)
}

// ClientConfigHandler serves GET /livekit/config. The web client bootstraps
// from this instead of a build-time environment variable.
type ClientConfigHandler struct {
	publicURL string
}

func NewClientConfigHandler(publicURL string) *ClientConfigHandler {
	return &ClientConfigHandler{publicURL: publicURL}
}

func (h *ClientConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"url": h.publicURL}, http.StatusOK)
}
