package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kailas-cloud/watchrec/internal/config"
	"github.com/kailas-cloud/watchrec/internal/db"
	dbredis "github.com/kailas-cloud/watchrec/internal/db/redis"
	"github.com/kailas-cloud/watchrec/internal/domain"
	domingest "github.com/kailas-cloud/watchrec/internal/domain/ingest"
	"github.com/kailas-cloud/watchrec/internal/loader"
	logpkg "github.com/kailas-cloud/watchrec/internal/logger"
	customerrepo "github.com/kailas-cloud/watchrec/internal/repository/customer"
	movierepo "github.com/kailas-cloud/watchrec/internal/repository/movie"
	ingestuc "github.com/kailas-cloud/watchrec/internal/usecase/ingest"
)

func main() {
	var (
		dir     = flag.String("dir", "data", "directory containing movie_*.json export files")
		limit   = flag.Int("limit", 0, "ingest at most this many files (0 = all)")
		envFlag = flag.String("env", "", "config environment (default: ENV variable or local)")
		upsert  = flag.Bool("upsert", false, "overwrite existing movie metadata instead of skipping")
	)
	flag.Parse()

	// Local runs keep their connection settings in .env; absence is fine.
	_ = godotenv.Load()

	env := *envFlag
	if env == "" {
		env = config.GetEnv()
	}
	cfg := config.MustLoad(env)

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	store, err := dbredis.NewStore(dbredis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}

	policy := db.CreateOnly
	if *upsert || cfg.Ingest.InsertPolicy == "upsert" {
		policy = db.Upsert
	}

	movies := movierepo.New(store, cfg.Storage.KeyPrefix)
	customers := customerrepo.New(store, cfg.Storage.KeyPrefix)
	svc := ingestuc.New(movies, customers, policy, logger)

	files, err := loader.Files(*dir)
	if err != nil {
		logger.Fatal("Failed to list export files", zap.String("dir", *dir), zap.Error(err))
	}
	if len(files) == 0 {
		logger.Fatal("No movie_*.json files found", zap.String("dir", *dir))
	}
	if *limit > 0 && len(files) > *limit {
		files = files[:*limit]
	}

	logger.Info("Starting ingest",
		zap.String("dir", *dir),
		zap.Int("files", len(files)),
		zap.String("policy", string(policy)),
	)

	start := time.Now()
	var totals domingest.Totals
	for _, path := range files {
		movie, err := loader.DecodeMovieFile(path)
		if err != nil {
			if errors.Is(err, domain.ErrMalformedInput) {
				logger.Warn("skipping malformed export file",
					zap.String("file", path), zap.Error(err))
				totals.Movies++
				totals.Errors++
				continue
			}
			logger.Fatal("Failed to read export file",
				zap.String("file", path), zap.Error(err))
		}

		report, err := svc.Ingest(ctx, movie)
		totals.Add(report)
		if err != nil {
			logger.Error("Failed to ingest movie",
				zap.String("file", path),
				zap.String("movie_id", movie.ID),
				zap.Error(err))
		}
	}

	logger.Info("Ingest finished",
		zap.Int("movies", totals.Movies),
		zap.Int("created", totals.Created),
		zap.Int("already_exists", totals.AlreadyExists),
		zap.Int("records_appended", totals.Appended),
		zap.Int("errors", totals.Errors),
		zap.Duration("elapsed", time.Since(start)),
	)

	if totals.Errors > 0 {
		fmt.Fprintf(os.Stderr, "ingest completed with %d errors\n", totals.Errors)
		os.Exit(1)
	}
}
