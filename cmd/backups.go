package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Moomken/deploy-frappe/config"
	"github.com/Moomken/deploy-frappe/internal/s3client"
	"github.com/Moomken/deploy-frappe/pkg/utils"
)

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List backup sets stored in the bucket",
	Long: `List the backup sets stored under the site prefix in the bucket,
newest first, with file counts and sizes.`,
	Example: `  # List sets for the configured site
  deploy-frappe backups

  # List sets for another site
  deploy-frappe backups --site staging.example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBackups(cmd)
	},
}

func runBackups(cmd *cobra.Command) error {
	site := getSiteName(cmd)
	if site == "" {
		err := fmt.Errorf("site name required: set %s or use --site", config.EnvSiteName)
		utils.PrintError(err, "backups")
		return err
	}
	if err := cfg.Require(config.EnvBucketName, config.EnvRegion,
		config.EnvAccessKey, config.EnvSecretKey); err != nil {
		utils.PrintError(err, "backups")
		return err
	}

	client, err := s3client.New(cfg)
	if err != nil {
		utils.PrintError(err, "backups")
		return err
	}

	timeout, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	if isVerbose(cmd) {
		cmd.Printf("Listing backup sets for site: %s\n", site)
	}

	listing, err := client.ListBackupSets(ctx, site)
	if err != nil {
		utils.PrintError(err, "backups")
		return err
	}

	if err := utils.PrintJSON(listing); err != nil {
		utils.PrintError(err, "backups")
		return err
	}
	return nil
}

func init() {
	backupsCmd.Flags().Int("timeout", 300, "Timeout in seconds for the operation")
}
