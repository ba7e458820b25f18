package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/Xornee/langify-your-daily-english-boost/backend/config"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
)

var rootCmd = &cobra.Command{
	Use:           "langify",
	Short:         "Langify gamification backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command line. It is the only thing main calls.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads config, the logger and the database shared by every command.
func bootstrap() (*config.Config, *utils.Logger, *gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(utils.LoggerConfig{Env: cfg.Env})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := utils.InitDB(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("db connect: %w", err)
	}
	return cfg, logger, db, nil
}
