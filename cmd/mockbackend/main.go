package main

// Run a scripted analysis backend for local demos:
//   go run ./cmd/mockbackend
//   BACKEND_BASE_URL=http://localhost:8090/api/v1 go run ./cmd/skincheck watch demo-completed

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"skincare-client/internal/mockbackend"
	"skincare-client/internal/shared/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo := mockbackend.NewMemoryRepo(nil)
	seed(ctx, repo)

	opts := []mockbackend.Option{mockbackend.WithToken(os.Getenv("MOCK_BACKEND_TOKEN"))}
	if ms := envInt("MOCK_POLL_WINDOW_MS", 0); ms > 0 {
		opts = append(opts, mockbackend.WithPollWindow(time.Duration(ms)*time.Millisecond, nil))
	}

	srv := &http.Server{
		Addr:              server.Addr(getEnv("MOCK_BACKEND_PORT", "8090")),
		Handler:           mockbackend.NewRouter(mockbackend.NewHandler(repo, opts...)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Starting mock analysis backend on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}

// seed creates one analysis per outcome with stable ids.
func seed(ctx context.Context, repo *mockbackend.MemoryRepo) {
	completed := mockbackend.DefaultScript()
	completed.ID = "demo-completed"

	failed := mockbackend.Script{
		ID:              "demo-failed",
		ProcessingPolls: 2,
		Fail:            true,
		ErrorMessage:    "We couldn't detect a face in the photo. Please retake it in good lighting.",
	}

	for _, s := range []mockbackend.Script{failed, completed} {
		if _, err := repo.Create(ctx, s); err != nil {
			log.Fatalf("seed %s: %v", s.ID, err)
		}
		log.Printf("seeded analysis %s", s.ID)
	}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}
