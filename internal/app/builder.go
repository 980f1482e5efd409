package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/archive"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/auth/blacklist"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/auth/password"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/auth/token"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/config"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/domain"
	redisx "github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/infra/cache/redis"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/infra/database/postgres"
	fsstorage "github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/infra/storage/fs"
	s3storage "github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/infra/storage/s3"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/toolkit"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web"
)

// pending-тулкиты старше этого возраста считаются брошенными
const stalePendingAge = time.Hour

type App struct {
	config   *config.Config
	server   *web.Server
	log      *log.Logger
	store    domain.FileStore
	cache    domain.Cache
	repo     *postgres.PGRepo
	registry *toolkit.Service
}

func Build(ctx context.Context) (*App, error) {
	base := log.New(os.Stdout, "[app] ", log.LstdFlags)

	serverLog := log.New(base.Writer(), base.Prefix()+"[server] ", base.Flags())
	pgLog := log.New(base.Writer(), base.Prefix()+"[postgres] ", base.Flags())
	storeLog := log.New(base.Writer(), base.Prefix()+"[storage] ", base.Flags())
	redisLog := log.New(base.Writer(), base.Prefix()+"[redis] ", base.Flags())
	toolkitLog := log.New(base.Writer(), base.Prefix()+"[toolkit] ", base.Flags())

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed load config: %w", err)
	}
	base.Printf("\n  configuration: %s-------------------", cfg)

	base.Println("init PostgreSQL")
	pgRepo, err := postgres.NewPGRepo(ctx, pgLog, cfg.GetDSN(), cfg.DBScheme)
	if err != nil {
		return nil, fmt.Errorf("failed init postgres: %w", err)
	}
	base.Println("PostgreSQL is initialized")

	var (
		store      domain.FileStore
		uploadsDir string
	)
	switch cfg.StorageDriver {
	case "s3":
		base.Println("init S3 storage")
		s3, err := s3storage.New(ctx, s3storage.Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3UseSSL,
			PathStyle: cfg.S3PathStyle,
		}, storeLog)
		if err != nil {
			return nil, fmt.Errorf("failed init s3: %w", err)
		}
		store = s3
	case "fs", "":
		base.Println("init local storage")
		local, err := fsstorage.New(cfg.UploadDir, storeLog)
		if err != nil {
			return nil, fmt.Errorf("failed init local storage: %w", err)
		}
		store = local
		uploadsDir = local.BaseDir()
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
	base.Println("storage is initialized")

	base.Println("init Redis")
	rc := redisx.New(redisx.Config{
		Addr:     cfg.RedisAddr,
		DB:       cfg.RedisDB,
		Password: cfg.RedisPassword,
	}, redisLog)
	if err := rc.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed init redis: %w", err)
	}
	base.Println("Redis is initialized")

	// Auth primitives
	hasher := password.NewDefault()
	tm := token.New(cfg.AuthJWTSecret, cfg.AuthIssuer, cfg.AuthTokenTTL)
	bl := blacklist.NewStore(rc)

	registry := toolkit.New(toolkitLog, pgRepo, store, rc, cfg.CacheToolkitTTL, cfg.CacheListTTL)
	archiver := &archive.Builder{Log: toolkitLog, Store: store}

	base.Println("init Server")
	server := web.New(serverLog, cfg, web.Deps{
		Users:      pgRepo,
		DB:         pgRepo,
		Cache:      rc,
		Store:      store,
		Registry:   registry,
		Archive:    archiver,
		Hasher:     hasher,
		Tokens:     tm,
		Blacklist:  bl,
		UploadsDir: uploadsDir,
	})
	base.Println("Server is initialized")

	base.Println("build ended")
	return &App{
		config:   cfg,
		server:   server,
		log:      base,
		store:    store,
		cache:    rc,
		repo:     pgRepo,
		registry: registry,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	// подчистка брошенных pending-записей до приёма трафика
	if n, err := a.registry.ReconcileStalePending(ctx, stalePendingAge); err != nil {
		a.log.Printf("reconcile stale pending failed: %v", err)
	} else if n > 0 {
		a.log.Printf("reconciled %d stale pending toolkits", n)
	}

	a.log.Println("start application...")
	go a.server.Run()
	<-ctx.Done()
	a.log.Println("stop application...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.server.Close(stopCtx)
	a.repo.Close()
	a.cache.Close()

	return nil
}
