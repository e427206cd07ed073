package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Moomken/deploy-frappe/internal/bench"
	"github.com/Moomken/deploy-frappe/internal/models"
	"github.com/Moomken/deploy-frappe/internal/superconf"
	"github.com/Moomken/deploy-frappe/pkg/utils"
)

var supervisorConfCmd = &cobra.Command{
	Use:   "supervisor-conf",
	Short: "Rewrite the generated supervisor config for container use",
	Long: `Rewrite the supervisor configuration bench generated.

Inside the web program section the command and directory lines are swapped
for container-appropriate values (gunicorn bound to 0.0.0.0:8000, the
bench sites directory) and the log-file keys are commented out so output
reaches supervisord's stdout. Every other line, including all other
sections, passes through byte-identical.

Without --in-place the rewritten content is printed to stdout for review;
with it the file is replaced and a JSON summary is printed.`,
	Example: `  # Preview the rewrite
  deploy-frappe supervisor-conf

  # Regenerate via "bench setup supervisor", then rewrite in place
  deploy-frappe supervisor-conf --setup --in-place

  # Rewrite a config at a non-default location
  deploy-frappe supervisor-conf --file /etc/supervisor.conf --in-place`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSupervisorConf(cmd)
	},
}

func runSupervisorConf(cmd *cobra.Command) error {
	file, _ := cmd.Flags().GetString("file")
	inPlace, _ := cmd.Flags().GetBool("in-place")
	setup, _ := cmd.Flags().GetBool("setup")

	if file == "" {
		file = filepath.Join(cfg.BenchDir, "config", "supervisor.conf")
	}

	if setup {
		timeout, _ := cmd.Flags().GetInt("timeout")
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
		defer cancel()

		if isVerbose(cmd) {
			cmd.Println("Regenerating supervisor config via bench...")
		}
		if err := bench.NewRunner(cfg).SetupSupervisor(ctx); err != nil {
			utils.PrintError(err, "supervisor-conf")
			return err
		}
	}

	rules := superconf.DefaultRules(cfg.BenchDir)
	lines, err := superconf.RewriteFile(file, rules, inPlace)
	if err != nil {
		utils.PrintError(err, "supervisor-conf")
		return err
	}

	if !inPlace {
		fmt.Print(superconf.Render(lines))
		return nil
	}

	result := &models.RewriteResult{
		File:           file,
		Section:        rules.Section,
		ReplacedLines:  superconf.Count(lines, superconf.LineReplaced),
		CommentedLines: superconf.Count(lines, superconf.LineCommented),
		TotalLines:     len(lines),
		InPlace:        true,
	}
	if err := utils.PrintJSON(result); err != nil {
		utils.PrintError(err, "supervisor-conf")
		return err
	}
	return nil
}

func init() {
	supervisorConfCmd.Flags().String("file", "", "Supervisor config path (default: <bench>/config/supervisor.conf)")
	supervisorConfCmd.Flags().Bool("in-place", false, "Rewrite the file instead of printing to stdout")
	supervisorConfCmd.Flags().Bool("setup", false, "Run \"bench setup supervisor\" before rewriting")
	supervisorConfCmd.Flags().Int("timeout", 300, "Timeout in seconds for the bench invocation")
}
