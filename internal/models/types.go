package models

type ErrorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
	Command   string `json:"command"`
}

type DependencyCheck struct {
	Name  string `json:"name"`
	Path  string `json:"path,omitempty"`
	Found bool   `json:"found"`
}

type DoctorResult struct {
	Checks     []DependencyCheck `json:"checks"`
	Privileged bool              `json:"privileged"`
	BenchDir   string            `json:"bench_dir"`
}

type RewriteResult struct {
	File           string `json:"file"`
	Section        string `json:"section"`
	ReplacedLines  int    `json:"replaced_lines"`
	CommentedLines int    `json:"commented_lines"`
	TotalLines     int    `json:"total_lines"`
	InPlace        bool   `json:"in_place"`
}

type InitResult struct {
	SiteName         string   `json:"site_name"`
	SiteCreated      bool     `json:"site_created"`
	AppsInstalled    []string `json:"apps_installed"`
	SchedulerEnabled bool     `json:"scheduler_enabled"`
	OperationTime    string   `json:"operation_time"`
	Duration         string   `json:"duration"`
}
