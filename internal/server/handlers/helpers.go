package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

type contextKey string

const identityKey contextKey = "identity"

// IdentityFromContext returns the authenticated identity claim set by the
// identity middleware, or "" when the request carried none.
func IdentityFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(identityKey).(string); ok {
		return id
	}
	return ""
}

// SetIdentityInContext stores a pre-validated identity claim on the context.
func SetIdentityInContext(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, map[string]string{"error": message}, status)
}
