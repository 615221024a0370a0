package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nuttee/meetgate/internal/config"
	"github.com/nuttee/meetgate/internal/ports"
	"github.com/nuttee/meetgate/internal/server/handlers"
	"github.com/nuttee/meetgate/internal/tracing"
	"github.com/nuttee/meetgate/web"
)

const ReadTimeout = 30 * time.Second

// Server is the API boundary: the two LiveKit bridge endpoints, health and
// metrics, and the static web client.
type Server struct {
	cfg    *config.Config
	router *chi.Mux
	server *http.Server
}

// NewServer wires the router. rooms may be nil when LiveKit is not
// configured; the bridge endpoints then answer 503 while health and the
// static client stay up.
func NewServer(cfg *config.Config, rooms ports.RoomService) (*Server, error) {
	router := chi.NewRouter()

	router.Use(tracing.Middleware("meetgate"))
	router.Use(Recovery)
	router.Use(Logger)
	router.Use(Metrics)
	router.Use(CORS(cfg.Server.CORSOrigins))

	var upstreamPing func(context.Context) error
	if rooms != nil {
		upstreamPing = func(ctx context.Context) error {
			_, err := rooms.ListRooms(ctx)
			return err
		}
	}
	healthH := handlers.NewHealthHandler(upstreamPing)
	router.Get("/health", healthH.Readiness)
	router.Get("/health/ready", healthH.Readiness)
	router.Get("/health/live", healthH.Liveness)

	router.Handle("/metrics", promhttp.Handler())

	lkH := handlers.NewLiveKitHandler(rooms, cfg.Server.RequireAuth)
	configH := handlers.NewClientConfigHandler(cfg.LiveKit.PublicURL)
	router.Route("/livekit", func(r chi.Router) {
		r.Use(Identity(IdentityConfig{RequireAuth: cfg.Server.RequireAuth}))
		r.Get("/token", lkH.GetToken)
		r.Get("/rooms", lkH.GetRooms)
		r.Get("/config", configH.Get)
	})

	staticHandler, err := staticFileServer(cfg.Server.StaticDir)
	if err != nil {
		return nil, err
	}
	router.Get("/*", staticHandler)

	return &Server{
		cfg:    cfg,
		router: router,
	}, nil
}

// staticFileServer serves the web client from staticDir when set, otherwise
// from the files embedded in the binary.
func staticFileServer(staticDir string) (http.HandlerFunc, error) {
	var fileServer http.Handler
	if staticDir != "" {
		fileServer = http.FileServer(http.Dir(staticDir))
	} else {
		sub, err := web.Static()
		if err != nil {
			return nil, fmt.Errorf("embedded web client: %w", err)
		}
		fileServer = http.FileServer(http.FS(sub))
	}

	return func(w http.ResponseWriter, r *http.Request) {
		fileServer.ServeHTTP(w, r)
	}, nil
}

// Router exposes the mux, used by tests.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
