package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/killallgit/interviewcut/api"
	"github.com/killallgit/interviewcut/api/types"
	"github.com/killallgit/interviewcut/internal/capture"
	"github.com/killallgit/interviewcut/internal/database"
	"github.com/killallgit/interviewcut/internal/services/cleanup"
	"github.com/killallgit/interviewcut/internal/services/history"
	"github.com/killallgit/interviewcut/internal/services/jobs"
	"github.com/killallgit/interviewcut/internal/services/workers"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local control API",
	Long: `Start the interviewcut control API with the configured settings.

A front end drives interview sessions over HTTP: create, start, mark
questions and stop. Marks files can also be queued for background
fragment cutting, and finished interviews are kept in the history.

Example:
  interviewcut serve
  interviewcut serve --port 9090
  interviewcut serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server flags
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	cfg := *appConfig
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}

	log := newLogger(cmd)
	fs := afero.NewOsFs()

	db, err := database.Open(cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	ff := newFFmpeg(&cfg)
	if err := ff.ValidateBinaries(); err != nil {
		log.WithError(err).Warn("Media tools unavailable, recording and cutting will fail (see interviewcut doctor)")
	}
	cutter := newCutter(&cfg, ff, fs, log)

	historySvc := history.NewService(history.NewRepository(db.DB), log)
	jobService := jobs.NewService(jobs.NewRepository(db.DB), log)

	pool := workers.NewWorkerPool(jobService, cfg.Processing.Workers, cfg.Processing.PollInterval, log)
	pool.RegisterProcessor(workers.NewFragmentBatchProcessor(jobService, cutter,
		workers.WithProcessorFs(fs),
		workers.WithDefaultExtension(cfg.Storage.FragmentExt),
		workers.WithBatchRecorder(historySvc),
		workers.WithProcessorLogger(log),
	))

	catalog, err := loadCatalog(fs, cfg.Questions.File)
	if err != nil {
		return fmt.Errorf("failed to load question catalog: %w", err)
	}

	registry := sessionSettings{
		cfg:     &cfg,
		fs:      fs,
		device:  func() capture.Device { return capture.NewFFmpegDevice(ff, captureConfig(&cfg), log) },
		cutter:  cutter,
		history: historySvc,
		logger:  log,
	}.registry()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := pool.Start(ctx); err != nil {
		return err
	}

	janitor := cleanup.NewService(fs, cleanup.Config{
		Dirs:         []string{cfg.Storage.BaseDir},
		Jobs:         jobService,
		JobRetention: cfg.Processing.JobRetention,
	}, log)
	janitor.Start(ctx)

	srv := api.NewServer(&cfg, &types.Dependencies{
		Build:      types.BuildInfo{Version: Version, GitCommit: GitCommit, BuildTime: BuildTime},
		DB:         db,
		Config:     &cfg,
		Fs:         fs,
		Logger:     log,
		Sessions:   registry,
		JobService: jobService,
		WorkerPool: pool,
		History:    historySvc,
		Questions:  catalog,
	})
	if err := srv.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	log.WithField("addr", srv.Addr()).Info("Server is ready to handle requests")

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("Shutting down server...")
	case runErr = <-serverErr:
		log.WithError(runErr).Error("Shutting down server...")
	}

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}
	if err := registry.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("Sessions did not stop cleanly")
	}
	pool.Stop()
	janitor.Stop()

	log.Info("Server gracefully stopped")
	return runErr
}
