// CLAUDE:SUMMARY Entry point for the vigie HTTP service — chi router, JWT tenant auth, SQLite stores, optional MCP stdio.
package main

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/vigie/auth"
	"github.com/hazyhaar/vigie/dbopen"
	"github.com/hazyhaar/vigie/idgen"
	"github.com/hazyhaar/vigie/observability"
	"github.com/hazyhaar/vigie/vigie"
)

func main() {
	_ = godotenv.Load()

	cfg := DefaultServerConfig()
	if path := os.Getenv("VIGIE_CONFIG"); path != "" {
		loaded, err := LoadServerConfig(path)
		if err != nil {
			slog.Error("config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Environment overrides.
	cfg.Listen = env("LISTEN", cfg.Listen)
	cfg.DBPath = env("DB_PATH", cfg.DBPath)
	cfg.ObsDBPath = env("OBS_DB_PATH", cfg.ObsDBPath)
	cfg.JWTSecret = env("JWT_SECRET", cfg.JWTSecret)
	cfg.LogLevel = env("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = env("LOG_FORMAT", cfg.LogFormat)
	cfg.MCPTransport = env("MCP_TRANSPORT", cfg.MCPTransport)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}
	// Derive a 32-byte HMAC secret via SHA-256 (satisfies auth.MinSecretLen).
	secretHash := sha256.Sum256([]byte(cfg.JWTSecret))
	jwtSecret := secretHash[:]

	logger := newLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Main database.
	db, err := dbopen.Open(cfg.DBPath, dbopen.WithMkdirAll())
	if err != nil {
		slog.Error("open db", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Observability side database.
	obsDB, err := dbopen.Open(cfg.ObsDBPath, dbopen.WithMkdirAll())
	if err != nil {
		slog.Error("open observability db", "error", err)
		os.Exit(1)
	}
	defer obsDB.Close()
	if err := observability.Init(obsDB); err != nil {
		slog.Error("init observability", "error", err)
		os.Exit(1)
	}
	events := observability.NewEventLogger(obsDB)

	// Vigie service.
	svc, err := vigie.New(db, &vigie.Config{
		DefaultWindowDays:     cfg.DefaultWindowDays,
		MaxWindowDays:         cfg.MaxWindowDays,
		MaxPressureWindowDays: cfg.MaxPressureWindowDays,
		DefaultLimit:          cfg.DefaultLimit,
		MaxLimit:              cfg.MaxLimit,
	}, logger, vigie.WithEvents(events))
	if err != nil {
		slog.Error("vigie service", "error", err)
		os.Exit(1)
	}
	defer svc.Close()

	// Auth glue: users table + seeded admin.
	if err := migrateUsers(db); err != nil {
		slog.Error("migrate users", "error", err)
		os.Exit(1)
	}
	if err := seedAdmin(ctx, db); err != nil {
		slog.Error("seed admin", "error", err)
		os.Exit(1)
	}

	// Optional MCP over stdio.
	if cfg.MCPTransport == "stdio" {
		mcpSrv := mcp.NewServer(&mcp.Implementation{
			Name:    "vigie",
			Version: "1.0.0",
		}, nil)
		svc.RegisterMCP(mcpSrv)
		go func() {
			if err := mcpSrv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
				slog.Error("MCP stdio", "error", err)
			}
		}()
	}

	// Router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(auth.Middleware(jwtSecret)) // soft parse on all routes

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed JSON body"})
			return
		}
		claims, err := login(req.Context(), db, in.Email, in.Password)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
			return
		}
		token, err := auth.GenerateToken(jwtSecret, claims, 24*time.Hour)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
		secure := req.TLS != nil || req.Header.Get("X-Forwarded-Proto") == "https"
		http.SetCookie(w, &http.Cookie{
			Name: "token", Value: token, Path: "/", HttpOnly: true, Secure: secure,
			SameSite: http.SameSiteLaxMode, MaxAge: int((24 * time.Hour).Seconds()),
		})
		writeJSON(w, http.StatusOK, map[string]string{
			"token": token, "tenant_id": claims.TenantID, "role": claims.Role,
		})
	})

	// Everything below requires a resolved tenant.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireTenant)
		svc.RegisterHTTP(r)
	})

	server := &http.Server{
		Addr:              cfg.Listen,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		server.Shutdown(shutdownCtx)
	}()

	slog.Info("vigie listening", "addr", cfg.Listen)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server", "error", err)
		os.Exit(1)
	}
}

func newLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	if format == "text" {
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{Level: lvl}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

// --- Auth glue ---

func migrateUsers(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			tenant_id     TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL DEFAULT 'member',
			status        TEXT NOT NULL DEFAULT 'active',
			created_at    INTEGER NOT NULL
		);
	`)
	return err
}

// seedAdmin creates the initial admin from ADMIN_EMAIL / ADMIN_PASSWORD /
// ADMIN_TENANT when the users table is empty.
func seedAdmin(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	tenantID := os.Getenv("ADMIN_TENANT")
	if email == "" || password == "" || tenantID == "" {
		slog.Warn("users table empty and no ADMIN_EMAIL/ADMIN_PASSWORD/ADMIN_TENANT set, skipping seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO users (id, tenant_id, email, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, 'admin', ?)`,
		idgen.New(), tenantID, email, string(hash), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	slog.Info("seeded admin user", "email", email, "tenant_id", tenantID)
	return nil
}

func login(ctx context.Context, db *sql.DB, email, password string) (*auth.TenantClaims, error) {
	var id, tenantID, hash, role string
	err := db.QueryRowContext(ctx,
		`SELECT id, tenant_id, password_hash, role FROM users
		WHERE email = ? AND status = 'active'`, email).
		Scan(&id, &tenantID, &hash, &role)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, err
	}
	return &auth.TenantClaims{UserID: id, TenantID: tenantID, Email: email, Role: role}, nil
}

// --- Helpers ---

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
