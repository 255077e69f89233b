package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"skincare-client/internal/analyses"
	"skincare-client/internal/contentnorm"
	"skincare-client/internal/poller"
	"skincare-client/internal/preferences"
	"skincare-client/internal/queue"
	"skincare-client/internal/resultcache"
	"skincare-client/internal/results"
	"skincare-client/internal/scoring"
	"skincare-client/internal/shared/config"
	"skincare-client/internal/shared/server"
	"skincare-client/internal/shared/storage/db"
	"skincare-client/internal/shared/storage/kv"
	"skincare-client/internal/shared/storage/kv/breaker"
	"skincare-client/internal/shared/storage/kv/filekv"
	"skincare-client/internal/shared/storage/kv/memkv"
	"skincare-client/internal/shared/storage/kv/pgkv"
	"skincare-client/internal/shared/storage/kv/rediskv"
	"skincare-client/internal/shared/storage/kv/s3kv"
	"skincare-client/internal/shared/storage/kv/sqlitekv"
	"skincare-client/internal/shared/telemetry"
)

const redisKeyPrefix = "skincare:"

// App holds shared dependencies.
type App struct {
	Config     config.Config
	Router     *gin.Engine
	DB         *sql.DB
	Store      kv.Store
	Queue      queue.Client
	Backend    analyses.Fetcher
	Normalizer *scoring.Normalizer
	Cache      *resultcache.Cache
	Language   *preferences.Language
	Translator *contentnorm.Translator
	Poller     *poller.Poller
	Results    *results.Service

	closers []func() error
}

// Option overrides a dependency Build would otherwise construct.
type Option func(*App)

// WithFetcher replaces the HTTP backend client.
func WithFetcher(f analyses.Fetcher) Option {
	return func(a *App) { a.Backend = f }
}

// WithStore replaces the configured key-value backend.
func WithStore(s kv.Store) Option {
	return func(a *App) { a.Store = s }
}

// Build prepares every dependency and the display API router.
func Build(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	app := &App{Config: cfg}
	for _, opt := range opts {
		opt(app)
	}

	if app.Store == nil {
		if err := app.buildStore(ctx); err != nil {
			app.Close()
			return nil, err
		}
	}

	if app.Backend == nil {
		client, err := analyses.NewHTTPClient(cfg.BackendBaseURL, analyses.ClientOptions{
			Token:   cfg.BackendToken,
			Timeout: cfg.BackendTimeout,
			RPS:     cfg.BackendRPS,
		})
		if err != nil {
			app.Close()
			return nil, err
		}
		app.Backend = client
	}

	if cfg.SQSQueueURL != "" {
		q, err := queue.NewSQSClient(ctx, cfg.SQSQueueURL, cfg.AWSRegion)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.Queue = q
	}

	app.buildServices(ctx)
	app.Router = server.NewRouter(server.RouterDeps{
		Config:      cfg,
		Results:     results.NewHandler(app.Results),
		Preferences: preferences.NewHandler(app.Language),
		Translate:   contentnorm.NewHandler(app.Translator),
	})
	return app, nil
}

// BuildStore opens only the configured key-value backend. Tools that inspect
// persisted records use it without needing a backend URL.
func BuildStore(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{Config: cfg}
	if err := app.buildStore(ctx); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// Close releases database handles opened by Build.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) buildStore(ctx context.Context) error {
	cfg := a.Config
	var (
		store  kv.Store
		remote bool
	)
	switch cfg.KVBackend {
	case "memory":
		store = memkv.New()
	case "file":
		store = filekv.New(cfg.KVDataDir)
	case "postgres":
		sqlDB, err := a.buildDB(ctx)
		if err != nil {
			return err
		}
		store = pgkv.New(sqlDB)
		remote = true
	case "redis":
		rdb, err := rediskv.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, rdb.Close)
		store = rediskv.New(rdb, redisKeyPrefix)
		remote = true
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return fmt.Errorf("KV_BACKEND=s3 requires S3_BUCKET")
		}
		s3Store, err := s3kv.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return err
		}
		store = s3Store
		remote = true
	default:
		sqliteStore, err := sqlitekv.Open(cfg.KVDataDir)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, sqliteStore.Close)
		store = sqliteStore
	}

	if remote && cfg.KVBreaker {
		store = breaker.Wrap(store, cfg.KVBackend)
	}
	a.Store = store
	telemetry.Info("bootstrap.kv_ready", map[string]any{
		"backend": cfg.KVBackend,
		"breaker": remote && cfg.KVBreaker,
	})
	return nil
}

func (a *App) buildDB(ctx context.Context) (*sql.DB, error) {
	cfg := a.Config
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, fmt.Errorf("KV_BACKEND=postgres requires DATABASE_URL")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		sqlDB, err = db.Shared(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultLambdaOptions()))
	} else {
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err == nil {
			a.closers = append(a.closers, sqlDB.Close)
		}
	}
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	a.DB = sqlDB
	return sqlDB, nil
}

func (a *App) buildServices(ctx context.Context) {
	cfg := a.Config

	fallback, err := preferences.ParseLanguage(cfg.AppLanguage)
	if err != nil {
		log.Printf("bootstrap: APP_LANGUAGE %q unsupported; using en", cfg.AppLanguage)
		fallback = language.English
	}
	a.Language = preferences.NewLanguage(a.Store, fallback)
	if _, err := a.Language.Load(ctx); err != nil {
		log.Printf("bootstrap: load language preference: %v", err)
	}

	a.Translator = contentnorm.New(a.Language, contentnorm.WithLanguages(
		parseTag(cfg.ContentSourceLanguage, language.English),
		parseTag(cfg.ContentTargetLanguage, language.Spanish),
	))

	a.Normalizer = scoring.New(scoring.StaticFlag(cfg.EnableBoosting))
	a.Cache = resultcache.New(a.Store, a.Normalizer)
	a.Poller = &poller.Poller{Fetcher: a.Backend, Interval: cfg.PollInterval}

	opts := []results.Option{results.WithPoller(a.Poller)}
	if a.Queue != nil {
		opts = append(opts, results.WithPublisher(a.Queue))
	}
	a.Results = results.NewService(a.Backend, a.Cache, a.Translator, opts...)
}

func parseTag(raw string, def language.Tag) language.Tag {
	tag, err := language.Parse(strings.TrimSpace(raw))
	if err != nil {
		log.Printf("bootstrap: invalid language %q; using %s", raw, def)
		return def
	}
	return tag
}
