package models

// Artifact name suffixes shared by every backup set. Objects are stored as
// <prefix>/<site>/<id>/<id>-<suffix>; local files produced by bench carry
// the same <id>-<suffix> names.
const (
	ArtifactDatabase     = "database.sql.gz"
	ArtifactPrivateFiles = "private-files.tar.gz"
	ArtifactPublicFiles  = "public-files.tar.gz"
	ArtifactSiteConfig   = "site_config_backup.json"
)

// BackupSet points at the artifacts of one backup run. Database is the only
// mandatory member; empty optional fields mean the artifact was not
// produced or could not be fetched.
type BackupSet struct {
	ID           string `json:"id"`
	Database     string `json:"database"`
	PrivateFiles string `json:"private_files,omitempty"`
	PublicFiles  string `json:"public_files,omitempty"`
	SiteConfig   string `json:"site_config,omitempty"`
}

type UploadItem struct {
	LocalPath  string `json:"local_path"`
	RemotePath string `json:"remote_path"`
	Size       int64  `json:"size"`
}

type UploadResult struct {
	BucketName     string       `json:"bucket_name"`
	Site           string       `json:"site"`
	BackupID       string       `json:"backup_id"`
	Items          []UploadItem `json:"items"`
	TotalFiles     int          `json:"total_files"`
	TotalSizeBytes int64        `json:"total_size_bytes"`
	TotalSizeHuman string       `json:"total_size_human"`
	OperationTime  string       `json:"operation_time"`
	UploadDuration string       `json:"upload_duration"`
}

type SiteBackup struct {
	Site     string        `json:"site"`
	Set      BackupSet     `json:"set"`
	Uploaded bool          `json:"uploaded"`
	Upload   *UploadResult `json:"upload,omitempty"`
}

type BackupResult struct {
	Sites         []SiteBackup `json:"sites"`
	OperationTime string       `json:"operation_time"`
	Duration      string       `json:"duration"`
}

type BackupSetInfo struct {
	ID             string `json:"id"`
	Files          int    `json:"files"`
	TotalSizeBytes int64  `json:"total_size_bytes"`
	TotalSizeHuman string `json:"total_size_human"`
	LastModified   string `json:"last_modified,omitempty"`
}

type BackupListing struct {
	BucketName string          `json:"bucket_name"`
	Site       string          `json:"site"`
	Sets       []BackupSetInfo `json:"sets"`
	TotalSets  int             `json:"total_sets"`
}
