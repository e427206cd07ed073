package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Moomken/deploy-frappe/config"
	"github.com/Moomken/deploy-frappe/internal/bench"
	"github.com/Moomken/deploy-frappe/internal/models"
	"github.com/Moomken/deploy-frappe/internal/s3client"
	"github.com/Moomken/deploy-frappe/pkg/utils"
)

var restoreCmd = &cobra.Command{
	Use:   "restore [backup-id]",
	Short: "Restore a site from a backup set stored in S3",
	Long: `Restore the site from the backup set identified by backup-id.

The four artifacts are downloaded into a temporary directory. The database
dump is mandatory: its absence or emptiness aborts the restore. The file
archives and the site-config snapshot are optional; when one is missing the
corresponding restore option is simply omitted.

On restore failure the downloaded artifacts are kept on disk for
inspection; on success and on earlier validation failures the temporary
directory is removed.`,
	Example: `  # Restore interactively
  deploy-frappe restore 20260824_093000

  # Restore without the confirmation prompt
  deploy-frappe restore 20260824_093000 --yes

  # Restore into a different site
  deploy-frappe restore 20260824_093000 --site staging.example.com`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRestore(cmd, args)
	},
}

func runRestore(cmd *cobra.Command, args []string) error {
	backupID := args[0]
	yes, _ := cmd.Flags().GetBool("yes")

	site := getSiteName(cmd)
	if site == "" {
		err := fmt.Errorf("site name required: set %s or use --site", config.EnvSiteName)
		utils.PrintError(err, "restore")
		return err
	}
	if err := cfg.Require(config.EnvBucketName, config.EnvRegion,
		config.EnvAccessKey, config.EnvSecretKey, config.EnvDBRootPassword); err != nil {
		utils.PrintError(err, "restore")
		return err
	}

	if !yes {
		fmt.Printf("Restore operation summary:\n")
		fmt.Printf("  Site: %s\n", site)
		fmt.Printf("  Backup set: %s\n", backupID)
		fmt.Printf("  Bucket: %s\n", cfg.BucketName)

		fmt.Print("Continue with restore? (y/N): ")
		if !readConfirmation(os.Stdin) {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	client, err := s3client.New(cfg)
	if err != nil {
		utils.PrintError(err, "restore")
		return err
	}

	timeout, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	tempDir, err := os.MkdirTemp("", "deploy-frappe-restore-")
	if err != nil {
		utils.PrintError(err, "restore")
		return err
	}

	if isVerbose(cmd) {
		cmd.Printf("Downloading backup set %s to %s...\n", backupID, tempDir)
	}

	startTime := time.Now()
	set, err := client.DownloadBackupSet(ctx, site, backupID, tempDir)
	if err != nil {
		os.RemoveAll(tempDir)
		utils.PrintError(err, "restore")
		return err
	}

	if isVerbose(cmd) {
		cmd.Printf("Restoring site %s from %s...\n", site, set.Database)
	}

	runner := bench.NewRunner(cfg)
	err = runner.Restore(ctx, bench.RestoreOptions{
		Site:             site,
		DatabaseFile:     set.Database,
		WithPrivateFiles: set.PrivateFiles,
		WithPublicFiles:  set.PublicFiles,
		DBRootUsername:   cfg.DBRootUser,
		DBRootPassword:   cfg.DBRootPassword,
		AdminPassword:    cfg.AdminPassword,
		Force:            true,
	})
	if err != nil {
		// Keep the downloads for postmortem inspection.
		slog.Warn("restore failed, downloaded artifacts kept for inspection", "dir", tempDir)
		utils.PrintError(err, "restore")
		return err
	}

	os.RemoveAll(tempDir)

	result := &models.RestoreResult{
		Site:              site,
		BackupID:          backupID,
		Database:          set.Database,
		WithPrivateFiles:  set.PrivateFiles != "",
		WithPublicFiles:   set.PublicFiles != "",
		SiteConfigFetched: set.SiteConfig != "",
		OperationTime:     utils.FormatTime(startTime),
		RestoreDuration:   time.Since(startTime).String(),
	}
	if err := utils.PrintJSON(result); err != nil {
		utils.PrintError(err, "restore")
		return err
	}

	if isVerbose(cmd) {
		cmd.Println("Restore operation completed successfully")
	}
	return nil
}

func init() {
	restoreCmd.Flags().Bool("yes", false, "Skip confirmation prompt")
	restoreCmd.Flags().Int("timeout", 3600, "Timeout in seconds for the operation (default: 1 hour)")

	restoreCmd.SetUsageTemplate(`Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

Aliases:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

Available Commands:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasHelpSubCommands}}

Additional help topics:{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`)
}
