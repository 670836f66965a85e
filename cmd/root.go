package cmd

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/decoy/internal/api"
	"github.com/zhubert/decoy/internal/app"
	"github.com/zhubert/decoy/internal/clipboard"
	"github.com/zhubert/decoy/internal/config"
	perrors "github.com/zhubert/decoy/internal/errors"
	"github.com/zhubert/decoy/internal/logger"
)

var (
	debugMode             bool
	quietMode             bool
	configPath            string
	serverURL             string
	exportDir             string
	logFile               string
	timeoutSeconds        int
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "decoy",
	Short: "Terminal console for a scam honeypot backend",
	Long: `Decoy drives a scam honeypot backend from the terminal. Start a session
to get a persona, type what the scammer says, and watch the backend's
verdict, risk score and extracted intelligence update after every turn.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.decoy/config.json)")
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "", "Backend base URL (overrides config and "+config.EnvServerURL+")")
	rootCmd.PersistentFlags().IntVar(&timeoutSeconds, "timeout", 0, "Request timeout in seconds")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file (default "+logger.DefaultLogPath()+")")
	rootCmd.Flags().StringVar(&exportDir, "export-dir", "", "Directory for exported session files")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
	if err := initLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}

// initLogging opens the --log-file path, or the default log file
func initLogging() error {
	path := logFile
	if path == "" {
		path = logger.DefaultLogPath()
	}
	return logger.Init(path)
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("decoy %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("decoy %s\n", version)
}

// loadConfig reads the config file, then applies .env, DECOY_* variables
// and command-line flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// applyFlags copies flags the user set explicitly onto cfg
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("server") {
		if err := config.ValidateServerURL(serverURL); err != nil {
			return err
		}
		cfg.SetServerURL(serverURL)
	}
	if flags.Changed("timeout") {
		if timeoutSeconds < 1 || timeoutSeconds > config.MaxRequestTimeoutSeconds {
			return perrors.ConfigInvalid(fmt.Sprintf("--timeout must be between 1 and %d seconds", config.MaxRequestTimeoutSeconds))
		}
		cfg.SetRequestTimeoutSeconds(timeoutSeconds)
	}
	if flags.Lookup("export-dir") != nil && flags.Changed("export-dir") {
		cfg.SetExportDir(exportDir)
	}
	return nil
}

// newBackend builds the HTTP client for the configured server
func newBackend(cfg *config.Config) *api.Client {
	return api.New(cfg.GetServerURL(), api.WithTimeout(cfg.RequestTimeout()))
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	log := logger.WithComponent("cmd")
	log.Info("starting", "version", version, "server", cfg.GetServerURL(), "export_dir", cfg.GetExportDir(), "log", logger.Path())

	if err := clipboard.Init(); err != nil {
		log.Warn("clipboard unavailable, copy will fail", "error", err)
	}

	m := app.New(cfg, newBackend(cfg), version)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
