package bench

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/Moomken/deploy-frappe/internal/models"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestListSites(t *testing.T) {
	benchDir := t.TempDir()
	writeFile(t, filepath.Join(benchDir, "sites", "erp.example.com", "site_config.json"), "{}")
	writeFile(t, filepath.Join(benchDir, "sites", "staging.example.com", "site_config.json"), "{}")
	// Not sites: no site_config.json, or not a directory.
	if err := os.MkdirAll(filepath.Join(benchDir, "sites", "assets"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	writeFile(t, filepath.Join(benchDir, "sites", "apps.txt"), "erpnext\n")

	sites, err := ListSites(benchDir)
	if err != nil {
		t.Fatalf("ListSites() error = %v", err)
	}

	expected := []string{"erp.example.com", "staging.example.com"}
	if !reflect.DeepEqual(sites, expected) {
		t.Errorf("ListSites() = %v, want %v", sites, expected)
	}
}

func TestSiteExists(t *testing.T) {
	benchDir := t.TempDir()
	writeFile(t, filepath.Join(benchDir, "sites", "erp.example.com", "site_config.json"), "{}")

	runner := &Runner{BenchDir: benchDir}
	if !runner.SiteExists("erp.example.com") {
		t.Error("SiteExists() = false, want true")
	}
	if runner.SiteExists("missing.example.com") {
		t.Error("SiteExists() = true, want false")
	}
}

func TestLatestBackupSet(t *testing.T) {
	benchDir := t.TempDir()
	site := "erp.example.com"
	backupsDir := filepath.Join(benchDir, "sites", site, "private", "backups")

	oldID := "20260823_020000"
	newID := "20260824_020000"
	writeFile(t, filepath.Join(backupsDir, oldID+"-"+models.ArtifactDatabase), "old dump")
	writeFile(t, filepath.Join(backupsDir, newID+"-"+models.ArtifactDatabase), "new dump")
	writeFile(t, filepath.Join(backupsDir, newID+"-"+models.ArtifactPrivateFiles), "private archive")
	// Empty optional artifact must be excluded from the set.
	writeFile(t, filepath.Join(backupsDir, newID+"-"+models.ArtifactPublicFiles), "")

	older := time.Now().Add(-24 * time.Hour)
	if err := os.Chtimes(filepath.Join(backupsDir, oldID+"-"+models.ArtifactDatabase), older, older); err != nil {
		t.Fatalf("Failed to age old dump: %v", err)
	}

	set, err := LatestBackupSet(benchDir, site)
	if err != nil {
		t.Fatalf("LatestBackupSet() error = %v", err)
	}

	if set.ID != newID {
		t.Errorf("set.ID = %s, want %s", set.ID, newID)
	}
	if set.Database != filepath.Join(backupsDir, newID+"-"+models.ArtifactDatabase) {
		t.Errorf("set.Database = %s, want the newest dump", set.Database)
	}
	if set.PrivateFiles == "" {
		t.Error("set.PrivateFiles = empty, want the private archive path")
	}
	if set.PublicFiles != "" {
		t.Errorf("set.PublicFiles = %s, want empty for a zero-length artifact", set.PublicFiles)
	}
	if set.SiteConfig != "" {
		t.Errorf("set.SiteConfig = %s, want empty for a missing artifact", set.SiteConfig)
	}
}

func TestLatestBackupSetNoBackups(t *testing.T) {
	benchDir := t.TempDir()
	site := "erp.example.com"
	writeFile(t, filepath.Join(benchDir, "sites", site, "private", "backups", "notes.txt"), "nothing here")

	if _, err := LatestBackupSet(benchDir, site); err == nil {
		t.Error("LatestBackupSet() error = nil, want error for missing backup sets")
	}
}

func TestAppFetched(t *testing.T) {
	benchDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(benchDir, "apps", "erpnext"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	runner := &Runner{BenchDir: benchDir}
	if !runner.AppFetched("erpnext") {
		t.Error("AppFetched() = false, want true")
	}
	if runner.AppFetched("hrms") {
		t.Error("AppFetched() = true, want false")
	}
}
