package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Moomken/deploy-frappe/config"
)

var (
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "deploy-frappe",
	Short: "Provision and operate a containerized Frappe/ERPNext bench",
	Long: `deploy-frappe is the operational companion for a containerized
Frappe/ERPNext bench. It bootstraps a site on first run, installs apps from
a declarative list, rewrites the generated supervisor configuration for
in-container use, and moves backup sets between the bench and an
S3-compatible bucket.
Configuration is loaded from .env file or environment variables`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if isVerbose(cmd) {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	},
}

func Execute(config *config.Config) error {
	cfg = config
	// Errors are silenced on the command tree so results stay JSON; usage
	// errors still have to reach the operator.
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// readConfirmation reads one line and accepts only an explicit yes; empty
// input and EOF default to no.
func readConfirmation(r io.Reader) bool {
	line, _ := bufio.NewReader(r).ReadString('\n')
	response := strings.ToLower(strings.TrimSpace(line))
	return slices.Contains([]string{"y", "yes"}, response)
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(backupsCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(supervisorConfCmd)
	rootCmd.AddCommand(doctorCmd)

	rootCmd.PersistentFlags().StringP("site", "s", "", "Override site name from config")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
}

func getSiteName(cmd *cobra.Command) string {
	site, _ := cmd.Flags().GetString("site")
	if site != "" {
		return site
	}
	return cfg.SiteName
}

func isVerbose(cmd *cobra.Command) bool {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return verbose
}
