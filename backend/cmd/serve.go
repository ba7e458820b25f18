package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Xornee/langify-your-daily-english-boost/backend/cache"
	"github.com/Xornee/langify-your-daily-english-boost/backend/config"
	"github.com/Xornee/langify-your-daily-english-boost/backend/repository"
	"github.com/Xornee/langify-your-daily-english-boost/backend/routes"
	"github.com/Xornee/langify-your-daily-english-boost/backend/services"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		migrate, _ := cmd.Flags().GetBool("migrate")

		cfg, logger, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if migrate {
			if err := utils.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}

		loc, err := cfg.Location()
		if err != nil {
			return err
		}

		lbCache := leaderboardCache(cfg, logger)
		defer lbCache.Close()

		svc := services.New(
			repository.New(db, logger),
			lbCache,
			services.NewClock(loc),
			services.GoalDefaults{XPPerDay: cfg.DefaultXPGoal, LessonsPerDay: cfg.DefaultLessonGoal},
			logger,
		)
		app := routes.NewApp(svc, cfg, logger)

		errCh := make(chan error, 1)
		go func() {
			logger.Info("listening", "port", cfg.ServerPort, "timezone", loc.String())
			errCh <- app.Listen(":" + cfg.ServerPort)
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigCh:
			logger.Info("shutting down", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return app.ShutdownWithContext(ctx)
		case err := <-errCh:
			return err
		}
	},
}

// leaderboardCache falls back to no caching when redis is not configured or not reachable.
func leaderboardCache(cfg *config.Config, logger *utils.Logger) cache.LeaderboardCache {
	if cfg.RedisAddr == "" {
		return cache.Nop()
	}
	lb, err := cache.NewRedisLeaderboard(cfg.RedisAddr, cfg.LeaderboardCacheTTL, logger)
	if err != nil {
		logger.Warn("leaderboard cache disabled", "addr", cfg.RedisAddr, "error", err)
		return cache.Nop()
	}
	return lb
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Bool("migrate", true, "apply the schema before starting")
}
