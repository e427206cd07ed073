package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Moomken/deploy-frappe/config"
	"github.com/Moomken/deploy-frappe/internal/apps"
	"github.com/Moomken/deploy-frappe/internal/bench"
	"github.com/Moomken/deploy-frappe/internal/models"
	"github.com/Moomken/deploy-frappe/pkg/utils"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "First-run bootstrap: create the site and install apps",
	Long: `Bootstrap the bench on first run.

The command creates the configured site via "bench new-site" (skipped when
the site already exists), points the global bench config at the database
container, and fetches and installs every app listed in the apps file.

Any failing bench invocation aborts the run immediately and its captured
output is reported.`,
	Example: `  # Bootstrap using SITE_NAME and the default apps file
  deploy-frappe init

  # Bootstrap a specific site with a custom apps list
  deploy-frappe init --site erp.example.com --apps-file /opt/apps.txt

  # Create the site only, install no apps
  deploy-frappe init --skip-apps`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(cmd)
	},
}

func runInit(cmd *cobra.Command) error {
	site := getSiteName(cmd)
	if site == "" {
		err := fmt.Errorf("site name required: set %s or use --site", config.EnvSiteName)
		utils.PrintError(err, "init")
		return err
	}
	if err := cfg.Require(config.EnvAdminPassword, config.EnvDBRootPassword); err != nil {
		utils.PrintError(err, "init")
		return err
	}

	timeout, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	runner := bench.NewRunner(cfg)
	startTime := time.Now()
	result := &models.InitResult{SiteName: site}

	if runner.SiteExists(site) {
		slog.Info("site already provisioned, skipping new-site", "site", site)
	} else {
		if isVerbose(cmd) {
			cmd.Printf("Creating site %s...\n", site)
		}
		err := runner.NewSite(ctx, bench.NewSiteOptions{
			SiteName:        site,
			AdminPassword:   cfg.AdminPassword,
			DBRootUsername:  cfg.DBRootUser,
			DBRootPassword:  cfg.DBRootPassword,
			DBHost:          cfg.DBHost,
			DBPort:          cfg.DBPort,
			NoMariadbSocket: true,
		})
		if err != nil {
			utils.PrintError(err, "init")
			return err
		}
		result.SiteCreated = true
	}

	if err := runner.SetGlobalConfig(ctx, "db_host", cfg.DBHost); err != nil {
		utils.PrintError(err, "init")
		return err
	}
	if err := runner.SetGlobalConfig(ctx, "db_port", cfg.DBPort); err != nil {
		utils.PrintError(err, "init")
		return err
	}

	if err := runner.SetScheduler(ctx, bench.SchedulerOptions{Site: site, Enable: true}); err != nil {
		utils.PrintError(err, "init")
		return err
	}
	result.SchedulerEnabled = true

	skipApps, _ := cmd.Flags().GetBool("skip-apps")
	if !skipApps {
		installed, err := installApps(ctx, cmd, runner, site)
		if err != nil {
			utils.PrintError(err, "init")
			return err
		}
		result.AppsInstalled = installed
	}

	result.OperationTime = utils.FormatTime(startTime)
	result.Duration = time.Since(startTime).String()

	if err := utils.PrintJSON(result); err != nil {
		utils.PrintError(err, "init")
		return err
	}

	if isVerbose(cmd) {
		cmd.Println("Init operation completed successfully")
	}
	return nil
}

func installApps(ctx context.Context, cmd *cobra.Command, runner *bench.Runner, site string) ([]string, error) {
	appsFile, _ := cmd.Flags().GetString("apps-file")
	path := appsFile
	if path == "" {
		path = filepath.Join(cfg.BenchDir, "sites", "apps.txt")
	}

	list, err := apps.ParseFile(path)
	if err != nil {
		// A missing default apps file just means nothing to install.
		if errors.Is(err, os.ErrNotExist) && appsFile == "" {
			slog.Info("no apps file found, skipping app installation", "path", path)
			return nil, nil
		}
		return nil, err
	}

	var installed []string
	for _, app := range list {
		if runner.AppFetched(app.Name) {
			slog.Debug("app already fetched", "app", app.Name)
		} else {
			if isVerbose(cmd) {
				cmd.Printf("Fetching app %s...\n", app.Name)
			}
			err := runner.GetApp(ctx, bench.GetAppOptions{
				Name:   app.Name,
				URL:    app.URL,
				Branch: app.Branch,
			})
			if err != nil {
				return installed, err
			}
		}

		if isVerbose(cmd) {
			cmd.Printf("Installing app %s on %s...\n", app.Name, site)
		}
		if err := runner.InstallApp(ctx, site, app.Name); err != nil {
			return installed, err
		}
		installed = append(installed, app.Name)
	}
	return installed, nil
}

func init() {
	initCmd.Flags().String("apps-file", "", "Path to the apps list (default: <bench>/sites/apps.txt)")
	initCmd.Flags().Bool("skip-apps", false, "Create the site only, skip app installation")
	initCmd.Flags().Int("timeout", 3600, "Timeout in seconds for the operation (default: 1 hour)")
}
