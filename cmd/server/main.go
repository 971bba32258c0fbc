package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/hexpanel/hexpanel/internal/asset"
	"github.com/hexpanel/hexpanel/internal/auth"
	"github.com/hexpanel/hexpanel/internal/collab"
	"github.com/hexpanel/hexpanel/internal/config"
	"github.com/hexpanel/hexpanel/internal/db"
	"github.com/hexpanel/hexpanel/internal/design"
	"github.com/hexpanel/hexpanel/internal/document"
	"github.com/hexpanel/hexpanel/internal/engine"
	"github.com/hexpanel/hexpanel/internal/export"
	mw "github.com/hexpanel/hexpanel/internal/middleware"
)

// Playground design allows anonymous preview of the side panel sample.
const playgroundDesignID = "design_playground"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)
	engine.SetLogger(logger.With("component", "engine"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		slog.Error("migrate database", "error", err)
		os.Exit(1)
	}

	queries := db.New(pool)

	authService := auth.NewService(queries, cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)

	designService := design.NewService(queries)
	designHandler := design.NewHandler(designService)

	// Panel loader for the preview hub
	panelLoader := func(ctx context.Context, designID string) (*document.Panel, error) {
		if designID == playgroundDesignID {
			return document.NewSidePanel(designID), nil
		}
		return designService.LoadPanel(ctx, designID)
	}

	// Panel saver for the preview hub
	panelSaver := func(ctx context.Context, designID string, panel *document.Panel) error {
		if designID == playgroundDesignID {
			return nil
		}
		return designService.SavePanel(ctx, designID, panel)
	}

	hub := collab.NewHub(panelLoader, panelSaver)
	go hub.Run()

	assetStore, err := asset.NewStore(cfg.AssetDir)
	if err != nil {
		slog.Error("open asset store", "error", err)
		os.Exit(1)
	}
	assetHandler := asset.NewHandler(assetStore, designService, queries)
	exportHandler := export.NewHandler()

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	// Auth routes (public)
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Published drawings
	r.PathPrefix("/assets/").Handler(assetStore.Serve()).Methods("GET")

	// Export endpoints (public, used by the playground)
	r.HandleFunc("/export/svg", exportHandler.ExportSVG).Methods("POST", "OPTIONS")
	r.HandleFunc("/export/samples/{name}.svg", exportHandler.ExportSample).Methods("GET")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.AuthMiddleware)

	api.HandleFunc("/me", authHandler.Me).Methods("GET")
	api.HandleFunc("/designs", designHandler.List).Methods("GET")
	api.HandleFunc("/designs", designHandler.Create).Methods("POST")
	api.HandleFunc("/designs/{designId}", designHandler.Get).Methods("GET")
	api.HandleFunc("/designs/{designId}", designHandler.Delete).Methods("DELETE")
	api.HandleFunc("/designs/{designId}/panel", designHandler.GetPanel).Methods("GET")
	api.HandleFunc("/designs/{designId}/panel", designHandler.UpdatePanel).Methods("PUT")
	api.HandleFunc("/designs/{designId}/versions", designHandler.ListVersions).Methods("GET")
	api.HandleFunc("/designs/{designId}/svg", designHandler.SVG).Methods("GET")
	api.HandleFunc("/designs/{designId}/publish", assetHandler.Publish).Methods("POST")

	// WebSocket endpoint
	r.HandleFunc("/ws/design/{designId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, authService, designService, cfg.OriginHosts())
	})

	addr := ":" + strconv.Itoa(cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Stop hub first to save all dirty panels
		slog.Info("saving open designs...")
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *collab.Hub, authSvc *auth.Service, designs *design.Service, originHosts []string) {
	designID := mux.Vars(r)["designId"]

	var userID string
	var displayName string

	if designID == playgroundDesignID {
		// Anonymous user for playground
		userID = "anon-" + uuid.New().String()[:8]
		displayName = "Anonymous"
	} else {
		// Auth via query param; browsers cannot set headers on upgrades
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		var err error
		userID, err = authSvc.ValidateToken(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		if _, err := designs.Get(r.Context(), designID, userID); err != nil {
			http.Error(w, "design not available", http.StatusForbidden)
			return
		}

		user, err := authSvc.GetUser(r.Context(), userID)
		if err != nil {
			http.Error(w, "user not found", http.StatusInternalServerError)
			return
		}
		displayName = user.DisplayName
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originHosts,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := collab.NewClient(hub, conn, userID, displayName, designID, clientID)

	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}
