package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"senprep/backend/internal/config"
	"senprep/backend/internal/httpserver"
	"senprep/backend/internal/infrastructure/postgres"
	"senprep/backend/internal/infrastructure/token"
	authusecase "senprep/backend/internal/usecase/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.InsecureJWTSecret {
		log.Printf("WARNING: JWT_SECRET not set, using the insecure built-in default; all issued tokens are forgeable")
	}

	rootCtx := context.Background()
	db, err := postgres.New(rootCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Migrate(rootCtx); err != nil {
		log.Fatalf("failed to run database migrations: %v", err)
	}

	tokenManager := token.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry, cfg.JWTIssuer)

	authService := authusecase.NewService(
		postgres.NewStudentRepository(db.Pool),
		postgres.NewTeacherRepository(db.Pool),
		tokenManager,
		cfg.BcryptCost,
	)

	server := httpserver.NewServer(cfg, authService)
	log.Printf("HTTP server listening on %s", server.Addr())

	go func() {
		if err := server.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Printf("HTTP server closed: %v", err)
				return
			}
			log.Fatalf("server error: %v", err)
		}
		log.Printf("HTTP server stopped accepting new connections")
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	} else {
		log.Printf("graceful shutdown completed")
	}
}
