package bench

// Option structs render bench invocations as argv slices. Empty optional
// fields are omitted, so the composed command is simply shorter when an
// input is absent.

type NewSiteOptions struct {
	SiteName        string
	AdminPassword   string
	DBRootUsername  string
	DBRootPassword  string
	DBHost          string
	DBPort          string
	NoMariadbSocket bool
	InstallApps     []string
}

func (o NewSiteOptions) Args() []string {
	args := []string{"new-site", o.SiteName}
	if o.AdminPassword != "" {
		args = append(args, "--admin-password", o.AdminPassword)
	}
	if o.DBRootUsername != "" {
		args = append(args, "--mariadb-root-username", o.DBRootUsername)
	}
	if o.DBRootPassword != "" {
		args = append(args, "--mariadb-root-password", o.DBRootPassword)
	}
	if o.DBHost != "" {
		args = append(args, "--db-host", o.DBHost)
	}
	if o.DBPort != "" {
		args = append(args, "--db-port", o.DBPort)
	}
	if o.NoMariadbSocket {
		args = append(args, "--no-mariadb-socket")
	}
	for _, app := range o.InstallApps {
		args = append(args, "--install-app", app)
	}
	return args
}

type BackupOptions struct {
	Site      string
	WithFiles bool
}

func (o BackupOptions) Args() []string {
	args := []string{"--site", o.Site, "backup"}
	if o.WithFiles {
		args = append(args, "--with-files")
	}
	return args
}

type RestoreOptions struct {
	Site             string
	DatabaseFile     string
	WithPrivateFiles string
	WithPublicFiles  string
	DBRootUsername   string
	DBRootPassword   string
	AdminPassword    string
	Force            bool
}

func (o RestoreOptions) Args() []string {
	args := []string{"--site", o.Site}
	if o.Force {
		args = append(args, "--force")
	}
	args = append(args, "restore", o.DatabaseFile)
	if o.WithPrivateFiles != "" {
		args = append(args, "--with-private-files", o.WithPrivateFiles)
	}
	if o.WithPublicFiles != "" {
		args = append(args, "--with-public-files", o.WithPublicFiles)
	}
	if o.DBRootUsername != "" {
		args = append(args, "--mariadb-root-username", o.DBRootUsername)
	}
	if o.DBRootPassword != "" {
		args = append(args, "--mariadb-root-password", o.DBRootPassword)
	}
	if o.AdminPassword != "" {
		args = append(args, "--admin-password", o.AdminPassword)
	}
	return args
}

type SchedulerOptions struct {
	Site   string
	Enable bool
}

func (o SchedulerOptions) Args() []string {
	action := "disable-scheduler"
	if o.Enable {
		action = "enable-scheduler"
	}
	return []string{"--site", o.Site, action}
}

type GetAppOptions struct {
	Name   string
	URL    string
	Branch string
}

func (o GetAppOptions) Args() []string {
	args := []string{"get-app"}
	if o.Branch != "" {
		args = append(args, "--branch", o.Branch)
	}
	if o.URL != "" {
		args = append(args, o.URL)
	} else {
		args = append(args, o.Name)
	}
	return args
}
