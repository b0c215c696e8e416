package cmd

import (
	"fmt"
	"os"

	"github.com/killallgit/interviewcut/internal/logging"
	"github.com/killallgit/interviewcut/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	appConfig *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "interviewcut",
	Short: "Interview recorder and question fragment cutter",
	Long: `interviewcut - record user interviews and cut them per question

Mark when each question starts and ends while recording, then get one
video fragment per closed question when the interview stops.

Features:
  • Camera and microphone capture through ffmpeg
  • Question marks persisted after every change
  • Sequential fragment cutting with a per-interview report
  • Local HTTP control API with background fragment jobs
  • Interview history and question catalog`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (default "+config.DefaultConfigPath+")")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// loadConfig loads the configuration when a command needs it.
// version and help never call it.
func loadConfig() error {
	if appConfig != nil {
		return nil
	}

	config.SetConfigPath(cfgFile)
	if err := config.Init(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}
	appConfig = cfg
	return nil
}

// newLogger builds the command logger. Flags win over the settings file.
func newLogger(cmd *cobra.Command) *logrus.Logger {
	level, jsonLogs := "info", false
	if appConfig != nil {
		level = appConfig.Logging.Level
		jsonLogs = appConfig.Logging.Format == "json"
	}

	flags := cmd.Root().PersistentFlags()
	if flags.Changed("log-level") {
		level, _ = flags.GetString("log-level")
	}
	if flags.Changed("json-logs") {
		jsonLogs, _ = flags.GetBool("json-logs")
	}

	return logging.New(logging.Options{
		Level:  level,
		JSON:   jsonLogs,
		Output: cmd.ErrOrStderr(),
	})
}
