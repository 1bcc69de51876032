package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alexanderramin/somnus/internal/cache"
	"github.com/alexanderramin/somnus/internal/cli"
	"github.com/alexanderramin/somnus/internal/config"
	"github.com/alexanderramin/somnus/internal/db"
	"github.com/alexanderramin/somnus/internal/logging"
	"github.com/alexanderramin/somnus/internal/report"
	"github.com/alexanderramin/somnus/internal/repository"
	"github.com/alexanderramin/somnus/internal/service"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	// Open database
	database, dialect, err := db.Open(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	userRepo := repository.NewUserRepo(database, dialect)
	logRepo := repository.NewSleepLogRepo(database, dialect)

	// Wire unit of work for transactional operations
	uow := db.NewUnitOfWork(database)

	layout := report.DefaultLayout()
	if cfg.LayoutPath != "" {
		if layout, err = report.LoadLayout(cfg.LayoutPath); err != nil {
			return fmt.Errorf("loading layout: %w", err)
		}
	}
	generator := report.NewGenerator(layout,
		report.WithTemplate(cfg.TemplatePath),
		report.WithPDFOptions(report.PDFOptions{FontPath: cfg.FontPath}),
		report.WithLogger(logger.Named("report")),
	)

	// Wire services
	observer := service.NewLogUseCaseObserver(logger.Named("usecase"))
	profiles := service.NewProfileService(userRepo, observer)
	reportOpts := []service.ReportOption{
		service.WithReportLogger(logger.Named("report")),
		service.WithReportObserver(observer),
		service.WithCacheSalt(assetSalt(cfg)),
	}
	if cfg.CacheEnabled() {
		rc, err := openReportCache(cfg, logger)
		if err != nil {
			logger.Warn("report cache disabled", zap.Error(err))
		} else {
			defer rc.Close()
			reportOpts = append(reportOpts, service.WithReportCache(rc))
		}
	}

	app := &cli.App{
		Profiles: profiles,
		Diary:    service.NewDiaryService(profiles, logRepo, uow, dialect, observer),
		Reports:  service.NewReportService(profiles, logRepo, generator, reportOpts...),
		Username: cfg.Username,
	}

	// Forms need a real terminal on stdin.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

func openReportCache(cfg config.Config, logger *zap.Logger) (*cache.RedisReportCache, error) {
	rc := cache.NewRedisReportCache(cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), cfg.CacheTTL)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		rc.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.RedisAddr, err)
	}
	logger.Debug("report cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CacheTTL))
	return rc, nil
}

// assetSalt changes whenever an asset file the renderer reads changes.
func assetSalt(cfg config.Config) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{cfg.TemplatePath, cfg.FontPath, cfg.LayoutPath} {
		stamp := ""
		if fi, err := os.Stat(p); err == nil {
			stamp = fmt.Sprintf("%d:%d", fi.Size(), fi.ModTime().UnixNano())
		}
		parts = append(parts, p+"@"+stamp)
	}
	return strings.Join(parts, "|")
}
