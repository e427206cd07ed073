package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/Moomken/deploy-frappe/internal/models"
	"github.com/Moomken/deploy-frappe/pkg/utils"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the external collaborators are available",
	Long: `Check that the wrapped external tools are reachable on PATH: bench
(site and app lifecycle), supervisord (process control) and sudo (service
account switching when running privileged).

The exit code is non-zero when bench is missing; the other tools are
reported only.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDoctor(cmd)
	},
}

func runDoctor(cmd *cobra.Command) error {
	result := &models.DoctorResult{
		Privileged: os.Geteuid() == 0,
		BenchDir:   cfg.BenchDir,
	}

	benchFound := false
	for _, name := range []string{"bench", "supervisord", "sudo"} {
		path, err := exec.LookPath(name)
		check := models.DependencyCheck{Name: name, Path: path, Found: err == nil}
		if name == "bench" {
			benchFound = check.Found
		}
		result.Checks = append(result.Checks, check)
	}

	if err := utils.PrintJSON(result); err != nil {
		utils.PrintError(err, "doctor")
		return err
	}

	if !benchFound {
		return fmt.Errorf("bench CLI not found on PATH")
	}
	return nil
}
