package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Moomken/deploy-frappe/config"
	"github.com/Moomken/deploy-frappe/internal/bench"
	"github.com/Moomken/deploy-frappe/internal/models"
	"github.com/Moomken/deploy-frappe/internal/s3client"
	"github.com/Moomken/deploy-frappe/pkg/utils"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up a site and optionally upload the set to S3",
	Long: `Run "bench backup --with-files" for the site and locate the produced
backup set: the database dump plus the private files, public files and
site-config artifacts sharing its timestamp-derived prefix.

With --upload the set is pushed to the configured bucket under
<prefix>/<site>/<backup-id>/. With --all-sites every provisioned site is
backed up sequentially; the first failure aborts the run.`,
	Example: `  # Back up the configured site locally
  deploy-frappe backup

  # Back up and upload to the bucket
  deploy-frappe backup --upload

  # Back up every provisioned site and upload each set
  deploy-frappe backup --all-sites --upload

  # Database dump only, no file archives
  deploy-frappe backup --with-files=false`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBackup(cmd)
	},
}

func runBackup(cmd *cobra.Command) error {
	upload, _ := cmd.Flags().GetBool("upload")
	allSites, _ := cmd.Flags().GetBool("all-sites")
	withFiles, _ := cmd.Flags().GetBool("with-files")

	var sites []string
	if allSites {
		var err error
		sites, err = bench.ListSites(cfg.BenchDir)
		if err != nil {
			utils.PrintError(err, "backup")
			return err
		}
		if len(sites) == 0 {
			err = fmt.Errorf("no provisioned sites found under %s", cfg.BenchDir)
			utils.PrintError(err, "backup")
			return err
		}
	} else {
		site := getSiteName(cmd)
		if site == "" {
			err := fmt.Errorf("site name required: set %s or use --site", config.EnvSiteName)
			utils.PrintError(err, "backup")
			return err
		}
		if site == "all" {
			err := fmt.Errorf(`"all" is not a site name; use --all-sites for multi-site backup`)
			utils.PrintError(err, "backup")
			return err
		}
		sites = []string{site}
	}

	var client *s3client.Client
	if upload {
		if err := cfg.Require(config.EnvBucketName, config.EnvRegion,
			config.EnvAccessKey, config.EnvSecretKey); err != nil {
			utils.PrintError(err, "backup")
			return err
		}
		var err error
		client, err = s3client.New(cfg)
		if err != nil {
			utils.PrintError(err, "backup")
			return err
		}
	}

	timeout, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	runner := bench.NewRunner(cfg)
	startTime := time.Now()
	result := &models.BackupResult{}

	for _, site := range sites {
		if isVerbose(cmd) {
			cmd.Printf("Backing up site %s...\n", site)
		}
		err := runner.Backup(ctx, bench.BackupOptions{Site: site, WithFiles: withFiles})
		if err != nil {
			utils.PrintError(err, "backup")
			return err
		}

		set, err := bench.LatestBackupSet(cfg.BenchDir, site)
		if err != nil {
			utils.PrintError(err, "backup")
			return err
		}

		siteBackup := models.SiteBackup{Site: site, Set: *set}
		if upload {
			if isVerbose(cmd) {
				cmd.Printf("Uploading backup set %s...\n", set.ID)
			}
			uploadResult, err := client.UploadBackupSet(ctx, site, set)
			if err != nil {
				utils.PrintError(err, "backup")
				return err
			}
			siteBackup.Uploaded = true
			siteBackup.Upload = uploadResult
		}
		result.Sites = append(result.Sites, siteBackup)
	}

	result.OperationTime = utils.FormatTime(startTime)
	result.Duration = time.Since(startTime).String()

	if err := utils.PrintJSON(result); err != nil {
		utils.PrintError(err, "backup")
		return err
	}

	if isVerbose(cmd) {
		cmd.Println("Backup operation completed successfully")
	}
	return nil
}

func init() {
	backupCmd.Flags().Bool("upload", false, "Upload the backup set to the configured bucket")
	backupCmd.Flags().Bool("all-sites", false, "Back up every provisioned site")
	backupCmd.Flags().Bool("with-files", true, "Include private and public file archives")
	backupCmd.Flags().Int("timeout", 3600, "Timeout in seconds for the operation (default: 1 hour)")
}
