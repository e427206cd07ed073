package bench

import (
	"reflect"
	"testing"
)

func TestNewSiteOptionsArgs(t *testing.T) {
	opts := NewSiteOptions{
		SiteName:        "erp.example.com",
		AdminPassword:   "admin-secret",
		DBRootUsername:  "root",
		DBRootPassword:  "db-secret",
		DBHost:          "mariadb",
		DBPort:          "3306",
		NoMariadbSocket: true,
		InstallApps:     []string{"erpnext"},
	}

	expected := []string{
		"new-site", "erp.example.com",
		"--admin-password", "admin-secret",
		"--mariadb-root-username", "root",
		"--mariadb-root-password", "db-secret",
		"--db-host", "mariadb",
		"--db-port", "3306",
		"--no-mariadb-socket",
		"--install-app", "erpnext",
	}
	if got := opts.Args(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Args() = %v, want %v", got, expected)
	}
}

func TestBackupOptionsArgs(t *testing.T) {
	opts := BackupOptions{Site: "erp.example.com", WithFiles: true}
	expected := []string{"--site", "erp.example.com", "backup", "--with-files"}
	if got := opts.Args(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Args() = %v, want %v", got, expected)
	}

	opts.WithFiles = false
	expected = []string{"--site", "erp.example.com", "backup"}
	if got := opts.Args(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Args() = %v, want %v", got, expected)
	}
}

func TestRestoreOptionsArgs(t *testing.T) {
	opts := RestoreOptions{
		Site:             "erp.example.com",
		DatabaseFile:     "/tmp/set/20260824_093000-database.sql.gz",
		WithPrivateFiles: "/tmp/set/20260824_093000-private-files.tar.gz",
		WithPublicFiles:  "/tmp/set/20260824_093000-public-files.tar.gz",
		DBRootUsername:   "root",
		DBRootPassword:   "db-secret",
		Force:            true,
	}

	expected := []string{
		"--site", "erp.example.com",
		"--force",
		"restore", "/tmp/set/20260824_093000-database.sql.gz",
		"--with-private-files", "/tmp/set/20260824_093000-private-files.tar.gz",
		"--with-public-files", "/tmp/set/20260824_093000-public-files.tar.gz",
		"--mariadb-root-username", "root",
		"--mariadb-root-password", "db-secret",
	}
	if got := opts.Args(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Args() = %v, want %v", got, expected)
	}
}

// A set with only the mandatory database dump must still compose a valid,
// shorter command: no file-archive flags at all.
func TestRestoreOptionsArgsDatabaseOnly(t *testing.T) {
	opts := RestoreOptions{
		Site:         "erp.example.com",
		DatabaseFile: "/tmp/set/20260824_093000-database.sql.gz",
	}

	expected := []string{
		"--site", "erp.example.com",
		"restore", "/tmp/set/20260824_093000-database.sql.gz",
	}
	got := opts.Args()
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Args() = %v, want %v", got, expected)
	}
	for _, arg := range got {
		if arg == "--with-private-files" || arg == "--with-public-files" {
			t.Errorf("Args() contains %s for an absent artifact", arg)
		}
	}
}

func TestSchedulerOptionsArgs(t *testing.T) {
	opts := SchedulerOptions{Site: "erp.example.com", Enable: true}
	expected := []string{"--site", "erp.example.com", "enable-scheduler"}
	if got := opts.Args(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Args() = %v, want %v", got, expected)
	}

	opts.Enable = false
	expected = []string{"--site", "erp.example.com", "disable-scheduler"}
	if got := opts.Args(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Args() = %v, want %v", got, expected)
	}
}

func TestRedactArgs(t *testing.T) {
	args := []string{
		"new-site", "erp.example.com",
		"--admin-password", "admin-secret",
		"--mariadb-root-password", "db-secret",
		"--db-host", "mariadb",
	}

	redacted := redactArgs(args)
	for _, arg := range redacted {
		if arg == "admin-secret" || arg == "db-secret" {
			t.Errorf("redactArgs() leaked secret %q", arg)
		}
	}
	if redacted[7] != "mariadb" {
		t.Errorf("redactArgs() altered non-secret value: %v", redacted)
	}
	if args[3] != "admin-secret" {
		t.Error("redactArgs() mutated its input")
	}
}

func TestGetAppOptionsArgs(t *testing.T) {
	tests := []struct {
		name     string
		opts     GetAppOptions
		expected []string
	}{
		{
			"Bare name",
			GetAppOptions{Name: "erpnext"},
			[]string{"get-app", "erpnext"},
		},
		{
			"URL",
			GetAppOptions{Name: "erpnext", URL: "https://github.com/frappe/erpnext"},
			[]string{"get-app", "https://github.com/frappe/erpnext"},
		},
		{
			"URL with branch",
			GetAppOptions{Name: "erpnext", URL: "https://github.com/frappe/erpnext", Branch: "version-15"},
			[]string{"get-app", "--branch", "version-15", "https://github.com/frappe/erpnext"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.Args(); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Args() = %v, want %v", got, tt.expected)
			}
		})
	}
}
