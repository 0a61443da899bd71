package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/mackleonard/NBAWebScraper/internal/auth"
	"github.com/mackleonard/NBAWebScraper/internal/clickhouse"
	"github.com/mackleonard/NBAWebScraper/internal/config"
	"github.com/mackleonard/NBAWebScraper/internal/dal"
	"github.com/mackleonard/NBAWebScraper/internal/draft"
	grpcserver "github.com/mackleonard/NBAWebScraper/internal/grpc"
	"github.com/mackleonard/NBAWebScraper/internal/handlers"
	"github.com/mackleonard/NBAWebScraper/internal/logger"
	"github.com/mackleonard/NBAWebScraper/internal/metrics"
	"github.com/mackleonard/NBAWebScraper/internal/mocks"
	"github.com/mackleonard/NBAWebScraper/internal/models"
	"github.com/mackleonard/NBAWebScraper/internal/pubsub"
	"github.com/mackleonard/NBAWebScraper/internal/scoring"
)

// warehouseClient is what the sync loop needs from ClickHouse (real or mock)
type warehouseClient interface {
	SyncRankings(settings *scoring.Settings, replace func([]models.Candidate) error) error
	Close() error
}

var (
	dataStore    dal.RankingsDAL
	authProvider auth.AuthProvider
	ps           *pubsub.PubSub
	chClient     warehouseClient
	instruments  *metrics.Metrics
)

func main() {
	// Initialize logger first
	logger.Init()

	logger.Info("Starting mock draft simulator service")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize the rankings store
	switch cfg.DBDriver {
	case "memory":
		dataStore = dal.NewMemoryDAL()
		logger.Info("Using in-memory rankings store")
	case "sqlite":
		dataStore, err = dal.NewSQLiteDAL(cfg.SQLiteFile)
		if err != nil {
			logger.Error("Failed to initialize SQLite", "error", err)
			log.Fatalf("Failed to initialize SQLite: %v", err)
		}
		logger.Info("Connected to SQLite database", "file", cfg.SQLiteFile)
	case "postgres":
		if cfg.DatabaseURL == "" {
			logger.Error("DATABASE_URL environment variable is required for postgres driver")
			log.Fatal("DATABASE_URL environment variable is required for postgres driver")
		}
		if cfg.Environment == "local" {
			// SQLite stands in for Postgres when developing without a cluster
			dataStore, err = mocks.NewMockPostgresDAL(cfg.SQLiteFile)
		} else {
			dataStore, err = dal.NewPostgresDAL(cfg.DatabaseURL)
		}
		if err != nil {
			logger.Error("Failed to initialize Postgres", "error", err)
			log.Fatalf("Failed to initialize Postgres: %v", err)
		}
		logger.Info("Connected to Postgres database")
	default:
		logger.Error("Unknown DB_DRIVER", "driver", cfg.DBDriver)
		log.Fatalf("Unknown DB_DRIVER: %s (valid: memory, sqlite, postgres)", cfg.DBDriver)
	}

	// Initialize pub/sub: in-memory for local, embedded NATS for
	// development, real NATS JetStream for production
	var upstream pubsub.Upstream
	switch cfg.Environment {
	case "local":
		upstream = mocks.NewMockNATSPubSub()
	case "development", "":
		logger.Info("Starting embedded NATS server for development")
		embeddedNats, err := pubsub.NewEmbeddedNATSPubSub(pubsub.EmbeddedNATSOptions{
			Port:    0, // Random available port
			Subject: cfg.NATSSubject,
		})
		if err != nil {
			logger.Error("Failed to initialize embedded NATS", "error", err)
			log.Fatalf("Failed to initialize embedded NATS: %v", err)
		}
		upstream = embeddedNats
		logger.Info("Embedded NATS server ready", "url", embeddedNats.GetServerURL())
	default:
		realNats, err := pubsub.NewNATSPubSub(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			logger.Error("Failed to initialize NATS", "error", err)
			log.Fatalf("Failed to initialize NATS: %v", err)
		}
		upstream = realNats
		logger.Info("Connected to NATS", "url", cfg.NATSURL)
	}
	ps = pubsub.NewWithUpstream(upstream)

	instruments = metrics.New()
	settings := scoring.NewSettings()
	engine := draft.NewEngine()

	// Initialize the warehouse client (or mock without a ClickHouse server)
	if cfg.Environment == "production" {
		if cfg.ClickHouseAddr == "" {
			logger.Info("Skipping rankings sync (ClickHouse not configured)")
		} else {
			client, err := clickhouse.NewClient(cfg.ClickHouseAddr, cfg.ClickHouseDB, cfg.ClickHouseUser, cfg.ClickHousePassword)
			if err != nil {
				logger.Error("Failed to initialize ClickHouse", "error", err, "address", cfg.ClickHouseAddr)
				log.Fatalf("Failed to initialize ClickHouse: %v", err)
			}
			chClient = client
			logger.Info("Connected to ClickHouse", "address", cfg.ClickHouseAddr, "database", cfg.ClickHouseDB)
		}
	} else {
		chClient = mocks.NewMockWarehouseClient()
	}

	// Periodic rankings sync from the warehouse
	if chClient != nil {
		go func() {
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()

			syncRankings(settings)

			for range ticker.C {
				syncRankings(settings)
			}
		}()
	}

	// Initialize authentication
	if cfg.Environment == "production" {
		if cfg.AuthentikBaseURL == "" || cfg.AuthentikClientID == "" || cfg.AuthentikClientSecret == "" {
			logger.Error("AUTHENTIK_BASE_URL, AUTHENTIK_CLIENT_ID, and AUTHENTIK_CLIENT_SECRET are required for production")
			log.Fatal("AUTHENTIK_BASE_URL, AUTHENTIK_CLIENT_ID, and AUTHENTIK_CLIENT_SECRET are required for production")
		}

		redirectURL := cfg.AuthentikRedirectURL
		if redirectURL == "" {
			redirectURL = "http://localhost:8080/auth/callback"
		}

		authProvider = auth.NewAuthentikAuth(&auth.AuthentikConfig{
			BaseURL:      cfg.AuthentikBaseURL,
			ClientID:     cfg.AuthentikClientID,
			ClientSecret: cfg.AuthentikClientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "profile", "email"},
		})
		logger.Info("Connected to Authentik", "url", cfg.AuthentikBaseURL)
	} else {
		logger.Info("Using mock authentication (no Authentik server required)")
		authProvider = auth.NewMockAuth()
	}

	// Start gRPC health server in a goroutine
	go func() {
		srv := grpcserver.NewServer(dataStore)
		if err := srv.Serve("0.0.0.0:" + cfg.GRPCPort); err != nil {
			logger.Error("Failed to serve gRPC", "error", err)
			log.Fatalf("Failed to serve gRPC: %v", err)
		}
	}()

	// Set up HTTP routes
	mux := http.NewServeMux()

	// Auth routes (public)
	mux.HandleFunc("/auth/login", authProvider.LoginHandler)
	mux.HandleFunc("/auth/callback", authProvider.CallbackHandler)
	mux.HandleFunc("/auth/logout", authProvider.LogoutHandler)

	api := handlers.NewAPIHandlers(engine, dataStore, settings, ps, instruments, cfg.PoolLimit)

	// Draft API
	mux.HandleFunc("/api/draft/start", api.WithMetrics("/api/draft/start", api.StartDraft))
	mux.HandleFunc("/api/draft/pick", api.WithMetrics("/api/draft/pick", api.DraftPick))
	mux.HandleFunc("/api/draft/autopick", api.WithMetrics("/api/draft/autopick", api.AutoPick))
	mux.HandleFunc("/api/draft/simulate", api.WithMetrics("/api/draft/simulate", api.SimulateDraft))
	mux.HandleFunc("/api/draft/reset", api.WithMetrics("/api/draft/reset", api.ResetDraft))
	mux.HandleFunc("/api/draft/state", api.WithMetrics("/api/draft/state", api.GetDraftState))
	mux.HandleFunc("/api/draft/onclock", api.WithMetrics("/api/draft/onclock", api.GetOnClock))
	mux.HandleFunc("/api/draft/pool", api.WithMetrics("/api/draft/pool", api.GetPool))
	mux.HandleFunc("/api/draft/summary", api.WithMetrics("/api/draft/summary", api.GetSummary))

	// Rankings and scoring API
	mux.HandleFunc("/api/rankings", api.WithMetrics("/api/rankings", api.GetRankings))
	mux.HandleFunc("/api/scoring", api.WithMetrics("/api/scoring", api.Scoring))

	// SSE for realtime updates
	mux.HandleFunc("/api/events", api.EventsSSE)

	// Observability endpoints
	mux.Handle("/metrics", instruments.Handler())
	mux.HandleFunc("/api/health", healthHandler)
	mux.HandleFunc("/healthz", livenessHandler) // Kubernetes liveness probe
	mux.HandleFunc("/readyz", readinessHandler) // Kubernetes readiness probe

	addr := "0.0.0.0:" + cfg.Port
	logger.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("Server failed", "error", err)
		log.Fatal(err)
	}
}

// syncRankings rebuilds the store's rankings from the warehouse using the
// current scoring weights
func syncRankings(settings *scoring.Settings) {
	logger.Info("Syncing rankings from warehouse")

	err := chClient.SyncRankings(settings, dataStore.ReplaceRankings)
	instruments.RecordSync(err)
	if err != nil {
		logger.Error("Failed to sync rankings", "error", err)
		return
	}

	ps.Publish(pubsub.Event{Type: pubsub.EventRankingsSync})
	logger.Info("Rankings synced successfully")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	httpStatus := http.StatusOK
	checks := make(map[string]interface{})

	if dataStore != nil {
		if err := dataStore.Health(); err != nil {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}
	} else {
		checks["database"] = map[string]interface{}{
			"status": "not_configured",
		}
	}

	if chClient != nil {
		checks["warehouse"] = map[string]interface{}{
			"status": "healthy",
		}
	} else {
		checks["warehouse"] = map[string]interface{}{
			"status": "not_configured",
		}
	}

	if ps != nil {
		// Connection health is handled internally by the NATS client
		checks["pubsub"] = map[string]interface{}{
			"status": "healthy",
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Unix(),
		"checks":    checks,
	})
}

// livenessHandler handles Kubernetes liveness probes
// Returns 200 if the application is running (doesn't check dependencies)
func livenessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "alive",
		"timestamp": time.Now().Unix(),
	})
}

// readinessHandler handles Kubernetes readiness probes
// Returns 200 if the application is ready to serve traffic
func readinessHandler(w http.ResponseWriter, r *http.Request) {
	if dataStore != nil {
		if err := dataStore.Health(); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":    "not_ready",
				"reason":    "database_unavailable",
				"timestamp": time.Now().Unix(),
			})
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ready",
		"timestamp": time.Now().Unix(),
	})
}
