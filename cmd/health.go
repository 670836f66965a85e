package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zhubert/decoy/internal/api"
	perrors "github.com/zhubert/decoy/internal/errors"
	"github.com/zhubert/decoy/internal/logger"
	"github.com/zhubert/decoy/internal/session"
)

// errUnhealthy makes the health command exit non-zero.
var errUnhealthy = errors.New("backend is not healthy")

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether the backend is reachable and healthy",
	Long: `Calls GET /health once and prints the result. Exits non-zero when the
backend is unreachable or reports anything other than "ok".`,
	Args: cobra.NoArgs,
	RunE: runHealthCmd,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealthCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	defer logger.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout())
	defer cancel()

	fmt.Fprintf(cmd.OutOrStdout(), "Server: %s\n", cfg.GetServerURL())
	return runHealth(ctx, newBackend(cfg), cmd.OutOrStdout())
}

// runHealth checks backend once and writes the resulting status line to out
func runHealth(ctx context.Context, backend api.Backend, out io.Writer) error {
	ctrl := session.New()
	ctrl.BeginHealth()

	resp, err := backend.Health(ctx)
	if err != nil {
		ctrl.FailHealth(err)
		fmt.Fprintf(out, "Status: %s (%s)\n", ctrl.Status(), perrors.Describe(err))
		return errUnhealthy
	}

	ctrl.ApplyHealth(resp)
	fmt.Fprintf(out, "Status: %s\n", ctrl.Status())
	if !resp.Healthy() {
		return errUnhealthy
	}
	return nil
}
