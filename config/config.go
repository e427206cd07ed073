package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names understood by the tool. Commands declare the
// subset they need via Config.Require.
const (
	EnvEndpointURL  = "ENDPOINT_URL"
	EnvRegion       = "REGION"
	EnvAccessKey    = "ACCESS_KEY"
	EnvSecretKey    = "SECRET_KEY"
	EnvBucketName   = "BUCKET_NAME"
	EnvBucketPrefix = "BUCKET_PREFIX"

	EnvSiteName       = "SITE_NAME"
	EnvAdminPassword  = "ADMIN_PASSWORD"
	EnvDBRootUser     = "DB_ROOT_USER"
	EnvDBRootPassword = "DB_ROOT_PASSWORD"
	EnvDBHost         = "DB_HOST"
	EnvDBPort         = "DB_PORT"

	EnvBenchDir    = "BENCH_DIR"
	EnvServiceUser = "BENCH_SERVICE_USER"
)

type Config struct {
	EndpointURL  string
	Region       string
	AccessKey    string
	SecretKey    string
	BucketName   string
	BucketPrefix string

	SiteName       string
	AdminPassword  string
	DBRootUser     string
	DBRootPassword string
	DBHost         string
	DBPort         string

	BenchDir    string
	ServiceUser string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found, using environment variables only")
	}

	config := &Config{
		EndpointURL:  getEnv(EnvEndpointURL, ""),
		Region:       getEnv(EnvRegion, ""),
		AccessKey:    getEnv(EnvAccessKey, ""),
		SecretKey:    getEnv(EnvSecretKey, ""),
		BucketName:   getEnv(EnvBucketName, ""),
		BucketPrefix: getEnv(EnvBucketPrefix, ""),

		SiteName:       getEnv(EnvSiteName, ""),
		AdminPassword:  getEnv(EnvAdminPassword, ""),
		DBRootUser:     getEnv(EnvDBRootUser, "root"),
		DBRootPassword: getEnv(EnvDBRootPassword, ""),
		DBHost:         getEnv(EnvDBHost, "mariadb"),
		DBPort:         getEnv(EnvDBPort, "3306"),

		BenchDir:    getEnv(EnvBenchDir, "/home/frappe/frappe-bench"),
		ServiceUser: getEnv(EnvServiceUser, "frappe"),
	}

	return config, nil
}

// Require reports every missing variable from the given list in a single
// error, so an operator can fix the environment once instead of replaying
// the command per variable.
func (c *Config) Require(keys ...string) error {
	var missing []string
	for _, key := range keys {
		if c.value(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (c *Config) value(key string) string {
	switch key {
	case EnvEndpointURL:
		return c.EndpointURL
	case EnvRegion:
		return c.Region
	case EnvAccessKey:
		return c.AccessKey
	case EnvSecretKey:
		return c.SecretKey
	case EnvBucketName:
		return c.BucketName
	case EnvBucketPrefix:
		return c.BucketPrefix
	case EnvSiteName:
		return c.SiteName
	case EnvAdminPassword:
		return c.AdminPassword
	case EnvDBRootUser:
		return c.DBRootUser
	case EnvDBRootPassword:
		return c.DBRootPassword
	case EnvDBHost:
		return c.DBHost
	case EnvDBPort:
		return c.DBPort
	case EnvBenchDir:
		return c.BenchDir
	case EnvServiceUser:
		return c.ServiceUser
	}
	return ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
