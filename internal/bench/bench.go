package bench

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Moomken/deploy-frappe/config"
	"github.com/Moomken/deploy-frappe/internal/models"
)

// Runner invokes the bench CLI inside the bench directory. When the process
// runs as root, commands are re-executed under the configured service user;
// bench refuses to run as root and site files must stay owned by that user.
type Runner struct {
	BenchDir    string
	ServiceUser string
}

func NewRunner(cfg *config.Config) *Runner {
	return &Runner{
		BenchDir:    cfg.BenchDir,
		ServiceUser: cfg.ServiceUser,
	}
}

// Run executes one bench command and returns its combined output. A
// non-zero exit wraps the captured output into the error so the operator
// sees what bench reported. No retry: the caller aborts on first failure.
func (r *Runner) Run(ctx context.Context, args ...string) (string, error) {
	name := "bench"
	argv := args
	if os.Geteuid() == 0 && r.ServiceUser != "" {
		name = "sudo"
		argv = append([]string{"-H", "-u", r.ServiceUser, "bench"}, args...)
	}

	cmd := exec.CommandContext(ctx, name, argv...)
	cmd.Dir = r.BenchDir

	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("bench %s failed: %w: %s",
			strings.Join(redactArgs(args), " "), err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

var secretFlags = map[string]bool{
	"--admin-password":        true,
	"--mariadb-root-password": true,
}

// redactArgs masks password values so they never reach logs or errors.
func redactArgs(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i := 0; i < len(out)-1; i++ {
		if secretFlags[out[i]] {
			out[i+1] = "******"
		}
	}
	return out
}

func (r *Runner) NewSite(ctx context.Context, opts NewSiteOptions) error {
	_, err := r.Run(ctx, opts.Args()...)
	return err
}

func (r *Runner) Backup(ctx context.Context, opts BackupOptions) error {
	_, err := r.Run(ctx, opts.Args()...)
	return err
}

func (r *Runner) Restore(ctx context.Context, opts RestoreOptions) error {
	_, err := r.Run(ctx, opts.Args()...)
	return err
}

func (r *Runner) GetApp(ctx context.Context, opts GetAppOptions) error {
	_, err := r.Run(ctx, opts.Args()...)
	return err
}

func (r *Runner) InstallApp(ctx context.Context, site, app string) error {
	_, err := r.Run(ctx, "--site", site, "install-app", app)
	return err
}

func (r *Runner) SetScheduler(ctx context.Context, opts SchedulerOptions) error {
	_, err := r.Run(ctx, opts.Args()...)
	return err
}

func (r *Runner) SetGlobalConfig(ctx context.Context, key, value string) error {
	_, err := r.Run(ctx, "set-config", "-g", key, value)
	return err
}

func (r *Runner) SetupSupervisor(ctx context.Context) error {
	_, err := r.Run(ctx, "setup", "supervisor", "--yes")
	return err
}

// SiteExists reports whether the site has been provisioned: a site is a
// directory under sites/ carrying a site_config.json.
func (r *Runner) SiteExists(site string) bool {
	info, err := os.Stat(filepath.Join(r.BenchDir, "sites", site, "site_config.json"))
	return err == nil && !info.IsDir()
}

// AppFetched reports whether an app has already been cloned into apps/.
func (r *Runner) AppFetched(app string) bool {
	info, err := os.Stat(filepath.Join(r.BenchDir, "apps", app))
	return err == nil && info.IsDir()
}

// ListSites enumerates provisioned sites under the bench sites directory.
func ListSites(benchDir string) ([]string, error) {
	sitesDir := filepath.Join(benchDir, "sites")
	entries, err := os.ReadDir(sitesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sites directory %s: %w", sitesDir, err)
	}

	var sites []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		configPath := filepath.Join(sitesDir, entry.Name(), "site_config.json")
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			sites = append(sites, entry.Name())
		}
	}
	return sites, nil
}

// LatestBackupSet locates the newest backup set bench produced for a site.
// The set id is the shared filename prefix of the database dump; sibling
// artifacts are included only when present and non-empty.
func LatestBackupSet(benchDir, site string) (*models.BackupSet, error) {
	backupsDir := filepath.Join(benchDir, "sites", site, "private", "backups")
	entries, err := os.ReadDir(backupsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backups directory %s: %w", backupsDir, err)
	}

	var newestName string
	var newestMod int64
	dbSuffix := "-" + models.ArtifactDatabase
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), dbSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); newestName == "" || mod > newestMod {
			newestName = entry.Name()
			newestMod = mod
		}
	}
	if newestName == "" {
		return nil, fmt.Errorf("no backup sets found for site %s in %s", site, backupsDir)
	}

	set := &models.BackupSet{
		ID:       strings.TrimSuffix(newestName, dbSuffix),
		Database: filepath.Join(backupsDir, newestName),
	}
	set.PrivateFiles = optionalArtifact(backupsDir, set.ID, models.ArtifactPrivateFiles)
	set.PublicFiles = optionalArtifact(backupsDir, set.ID, models.ArtifactPublicFiles)
	set.SiteConfig = optionalArtifact(backupsDir, set.ID, models.ArtifactSiteConfig)
	return set, nil
}

func optionalArtifact(dir, id, suffix string) string {
	path := filepath.Join(dir, id+"-"+suffix)
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		return path
	}
	return ""
}
