package cmd

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	huh "charm.land/huh/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/decoy/internal/config"
	perrors "github.com/zhubert/decoy/internal/errors"
	"github.com/zhubert/decoy/internal/ui"
)

const optionNotifications = "notifications"

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Edit the decoy config file interactively",
	Args:  cobra.NoArgs,
	RunE:  runConfigure,
}

func init() {
	rootCmd.AddCommand(configureCmd)
}

// configureValues holds the form fields as the user edits them
type configureValues struct {
	ServerURL string
	ExportDir string
	Timeout   string
	Theme     string
	Options   []string
}

func valuesFrom(cfg *config.Config) *configureValues {
	v := &configureValues{
		ServerURL: cfg.GetServerURL(),
		ExportDir: cfg.GetExportDir(),
		Timeout:   strconv.Itoa(int(cfg.RequestTimeout().Seconds())),
		Theme:     cfg.GetTheme(),
	}
	if v.Theme == "" || !ui.ValidTheme(v.Theme) {
		v.Theme = string(ui.DefaultTheme)
	}
	if cfg.GetNotificationsEnabled() {
		v.Options = append(v.Options, optionNotifications)
	}
	return v
}

func validateTimeout(s string) error {
	secs, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || secs < 1 || secs > config.MaxRequestTimeoutSeconds {
		return fmt.Errorf("enter a whole number of seconds between 1 and %d", config.MaxRequestTimeoutSeconds)
	}
	return nil
}

func newConfigureForm(v *configureValues) *huh.Form {
	names := ui.ThemeNames()
	themeOptions := make([]huh.Option[string], len(names))
	for i, name := range names {
		themeOptions[i] = huh.NewOption(ui.GetTheme(name).Name, string(name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Backend URL").
				Description("Base URL serving /health, /start and /ingest").
				Placeholder(config.DefaultServerURL).
				Value(&v.ServerURL).
				Validate(config.ValidateServerURL),
			huh.NewInput().
				Title("Export directory").
				Description("Where session_<id>.json files are written").
				Value(&v.ExportDir),
			huh.NewInput().
				Title("Request timeout (seconds)").
				CharLimit(3).
				Value(&v.Timeout).
				Validate(validateTimeout),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOptions...).
				Value(&v.Theme),
			huh.NewMultiSelect[string]().
				Title("Options").
				Options(huh.NewOption("Desktop notification on scam detection", optionNotifications).
					Selected(slices.Contains(v.Options, optionNotifications))).
				Height(1).
				Value(&v.Options),
		),
	).WithTheme(ui.FormTheme())
}

// applyValues validates v and copies it onto cfg
func applyValues(cfg *config.Config, v *configureValues) error {
	url := strings.TrimRight(strings.TrimSpace(v.ServerURL), "/")
	if err := config.ValidateServerURL(url); err != nil {
		return err
	}
	if err := validateTimeout(v.Timeout); err != nil {
		return perrors.ConfigInvalid(err.Error())
	}
	dir := strings.TrimSpace(v.ExportDir)
	if dir == "" {
		dir = config.DefaultExportDir
	}
	if !ui.ValidTheme(v.Theme) {
		return perrors.ConfigInvalid(fmt.Sprintf("unknown theme %q", v.Theme))
	}

	secs, _ := strconv.Atoi(strings.TrimSpace(v.Timeout))
	cfg.SetServerURL(url)
	cfg.SetExportDir(dir)
	cfg.SetRequestTimeoutSeconds(secs)
	cfg.SetTheme(v.Theme)
	cfg.SetNotificationsEnabled(slices.Contains(v.Options, optionNotifications))
	return cfg.Validate()
}

func runConfigure(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("error loading config: %w", err)
	}

	v := valuesFrom(cfg)
	ui.SetThemeByName(v.Theme)
	if err := newConfigureForm(v).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration unchanged.")
			return nil
		}
		return err
	}

	if err := applyValues(cfg, v); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", cfg.Path())
	return nil
}
