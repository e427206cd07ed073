package models

type RestoreResult struct {
	Site              string `json:"site"`
	BackupID          string `json:"backup_id"`
	Database          string `json:"database"`
	WithPrivateFiles  bool   `json:"with_private_files"`
	WithPublicFiles   bool   `json:"with_public_files"`
	SiteConfigFetched bool   `json:"site_config_fetched"`
	OperationTime     string `json:"operation_time"`
	RestoreDuration   string `json:"restore_duration"`
}
