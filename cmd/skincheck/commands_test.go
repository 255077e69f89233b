package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"skincare-client/internal/analyses"
	"skincare-client/internal/mockbackend"
	"skincare-client/internal/shared/telemetry"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append(args, "--no-color"))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func setupEnv(t *testing.T) {
	t.Helper()
	t.Cleanup(telemetry.SetOutput(&bytes.Buffer{}))
	t.Setenv("KV_BACKEND", "file")
	t.Setenv("KV_DATA_DIR", t.TempDir())
	t.Setenv("POLL_INTERVAL_MS", "10")
	t.Setenv("BACKEND_RPS", "0")
	t.Setenv("APP_LANGUAGE", "en")
	t.Setenv("SQS_QUEUE_URL", "")
}

func newMockBackend(t *testing.T, scripts ...mockbackend.Script) (*mockbackend.MemoryRepo, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := mockbackend.NewMemoryRepo(nil)
	for _, s := range scripts {
		if _, err := repo.Create(context.Background(), s); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	srv := httptest.NewServer(mockbackend.NewRouter(mockbackend.NewHandler(repo)))
	t.Cleanup(srv.Close)
	return repo, srv.URL + "/api/v1"
}

func TestTranslateCommand(t *testing.T) {
	setupEnv(t)
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"translate", "Gentle Cleanser", "--lang", "es"}, "Limpiador suave"},
		{[]string{"translate", "Leave on for 10 minutes, then rinse.", "--kind", "instructions", "--lang", "es-MX"}, "Deja actuar durante 10 minutos, luego enjuaga."},
		{[]string{"translate", "Gentle Cleanser"}, "Gentle Cleanser"},
	}
	for _, tt := range tests {
		out, err := runCLI(t, tt.args...)
		if err != nil {
			t.Fatalf("%v: %v", tt.args, err)
		}
		if strings.TrimSpace(out) != tt.want {
			t.Fatalf("%v: got %q, want %q", tt.args, strings.TrimSpace(out), tt.want)
		}
	}

	if _, err := runCLI(t, "translate", "x", "--kind", "poem"); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}

func TestLangSetThenTranslateUsesPreference(t *testing.T) {
	setupEnv(t)

	out, err := runCLI(t, "lang", "get")
	if err != nil || strings.TrimSpace(out) != "en" {
		t.Fatalf("expected en before set, got %q %v", out, err)
	}
	if _, err := runCLI(t, "lang", "set", "es-AR"); err != nil {
		t.Fatalf("lang set: %v", err)
	}
	out, err = runCLI(t, "lang", "get")
	if err != nil || strings.TrimSpace(out) != "es" {
		t.Fatalf("expected es after set, got %q %v", out, err)
	}
	out, err = runCLI(t, "translate", "Sunscreen")
	if err != nil || strings.TrimSpace(out) != "Protector solar" {
		t.Fatalf("expected stored preference to apply, got %q %v", out, err)
	}
	if _, err := runCLI(t, "lang", "set", "ja"); err == nil {
		t.Fatalf("expected unsupported language error")
	}
}

func TestResultThenInspect(t *testing.T) {
	setupEnv(t)
	script := mockbackend.DefaultScript()
	script.ID = "a-1"
	script.ProcessingPolls = 0
	repo, backend := newMockBackend(t, script)
	repo.Advance(context.Background(), "a-1")

	out, err := runCLI(t, "result", "a-1", "--json", "--backend", backend)
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	var view struct {
		AnalysisID   string   `json:"analysisId"`
		OverallScore int      `json:"overallScore"`
		Locked       []string `json:"locked"`
	}
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if view.AnalysisID != "a-1" || view.OverallScore == 0 || len(view.Locked) != 1 || view.Locked[0] != "Redness" {
		t.Fatalf("unexpected view %+v", view)
	}

	out, err = runCLI(t, "inspect", "a-1")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.Contains(out, `"key": "boosted_metrics_a-1"`) || !strings.Contains(out, `"boostedMetrics"`) {
		t.Fatalf("unexpected inspect output %s", out)
	}

	if _, err := runCLI(t, "inspect", "missing"); err == nil {
		t.Fatalf("expected error for missing record")
	}
}

func TestResultNotReady(t *testing.T) {
	setupEnv(t)
	_, backend := newMockBackend(t, mockbackend.Script{ID: "p-1", ProcessingPolls: 5})

	_, err := runCLI(t, "result", "p-1", "--backend", backend)
	if err == nil || !strings.Contains(err.Error(), "is pending") {
		t.Fatalf("expected not-ready error, got %v", err)
	}
}

func TestWatchCommand(t *testing.T) {
	setupEnv(t)
	ok := mockbackend.DefaultScript()
	ok.ID = "w-1"
	ok.ProcessingPolls = 1
	_, backend := newMockBackend(t, ok, mockbackend.Script{ID: "w-2", Fail: true, ErrorMessage: "Face not detected"})

	out, err := runCLI(t, "watch", "w-1", "--backend", backend)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	if !strings.Contains(out, "Analysis w-1") || !strings.Contains(out, "Overall score:") || !strings.Contains(out, "locked") {
		t.Fatalf("unexpected watch output %s", out)
	}

	_, err = runCLI(t, "watch", "w-2", "--backend", backend)
	if err == nil || err.Error() != "Face not detected" {
		t.Fatalf("expected backend failure message, got %v", err)
	}
}

func TestWatchLatestSwitchesToNewerAnalysis(t *testing.T) {
	setupEnv(t)
	repo, backend := newMockBackend(t, mockbackend.Script{ID: "l-1", ProcessingPolls: 1_000_000})

	created := make(chan error, 1)
	go func() {
		deadline := time.Now().Add(5 * time.Second)
		for time.Now().Before(deadline) {
			a, err := repo.Latest(context.Background())
			if err == nil && a.Status == analyses.StatusProcessing {
				next := mockbackend.DefaultScript()
				next.ID = "l-2"
				next.ProcessingPolls = 0
				_, err := repo.Create(context.Background(), next)
				created <- err
				return
			}
			time.Sleep(5 * time.Millisecond)
		}
		created <- errors.New("l-1 was never polled")
	}()

	out, err := runCLI(t, "watch", "--latest", "--backend", backend)
	if err != nil {
		t.Fatalf("watch --latest: %v", err)
	}
	if err := <-created; err != nil {
		t.Fatalf("create l-2: %v", err)
	}
	if !strings.Contains(out, "Analysis l-2") {
		t.Fatalf("expected result for the newer analysis, got %s", out)
	}
}

func TestWatchArguments(t *testing.T) {
	setupEnv(t)
	_, backend := newMockBackend(t)
	if _, err := runCLI(t, "watch", "--backend", backend); err == nil {
		t.Fatalf("expected an error without id or --latest")
	}
	if _, err := runCLI(t, "watch", "x-1", "--latest", "--backend", backend); err == nil {
		t.Fatalf("expected an error with both id and --latest")
	}
	if _, err := runCLI(t, "watch", "--latest", "--backend", backend); err == nil || !strings.Contains(err.Error(), "no analyses yet") {
		t.Fatalf("expected no analyses error, got %v", err)
	}
}

func TestLatestWithNoAnalyses(t *testing.T) {
	setupEnv(t)
	_, backend := newMockBackend(t)
	out, err := runCLI(t, "latest", "--backend", backend)
	if err != nil || strings.TrimSpace(out) != "No analyses yet." {
		t.Fatalf("unexpected latest output %q %v", out, err)
	}
}

func TestProgressBar(t *testing.T) {
	tests := map[int]string{
		0:   "[--------------------]   0%",
		50:  "[##########----------]  50%",
		100: "[####################] 100%",
		140: "[####################] 100%",
	}
	for in, want := range tests {
		if got := progressBar(in); got != want {
			t.Fatalf("progressBar(%d) = %q, want %q", in, got, want)
		}
	}
}
