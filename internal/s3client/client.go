package s3client

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appConfig "github.com/Moomken/deploy-frappe/config"
	"github.com/Moomken/deploy-frappe/internal/models"
	"github.com/Moomken/deploy-frappe/pkg/utils"
)

type Client struct {
	s3Client   *s3.Client
	uploader   *manager.Uploader
	downloader *manager.Downloader
	config     *appConfig.Config
}

func New(cfg *appConfig.Config) (*Client, error) {
	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID:     cfg.AccessKey,
				SecretAccessKey: cfg.SecretKey,
			},
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Client *s3.Client
	if cfg.EndpointURL != "" {
		s3Client = s3.NewFromConfig(awsConfig, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			o.UsePathStyle = true
		})
	} else {
		s3Client = s3.NewFromConfig(awsConfig)
	}

	return &Client{
		s3Client:   s3Client,
		uploader:   manager.NewUploader(s3Client),
		downloader: manager.NewDownloader(s3Client),
		config:     cfg,
	}, nil
}

// UploadBackupSet pushes every artifact present in the set to the bucket.
// The database dump is mandatory; the other three are uploaded only when
// the set carries a local path for them.
func (c *Client) UploadBackupSet(ctx context.Context, site string, set *models.BackupSet) (*models.UploadResult, error) {
	startTime := time.Now()

	if set.Database == "" {
		return nil, fmt.Errorf("backup set %s has no database dump", set.ID)
	}
	if info, err := os.Stat(set.Database); err != nil {
		return nil, fmt.Errorf("database dump unreadable: %w", err)
	} else if info.Size() == 0 {
		return nil, fmt.Errorf("database dump %s is empty", set.Database)
	}

	artifacts := []struct {
		suffix string
		local  string
	}{
		{models.ArtifactDatabase, set.Database},
		{models.ArtifactPrivateFiles, set.PrivateFiles},
		{models.ArtifactPublicFiles, set.PublicFiles},
		{models.ArtifactSiteConfig, set.SiteConfig},
	}

	var items []models.UploadItem
	var totalSize int64
	for _, artifact := range artifacts {
		if artifact.local == "" {
			slog.Info("optional backup artifact not present, skipping upload",
				"site", site, "backup_id", set.ID, "artifact", artifact.suffix)
			continue
		}
		key := c.objectKey(site, set.ID, artifact.suffix)
		size, err := c.uploadFile(ctx, artifact.local, key)
		if err != nil {
			return nil, fmt.Errorf("failed to upload %s: %w", artifact.suffix, err)
		}
		items = append(items, models.UploadItem{
			LocalPath:  artifact.local,
			RemotePath: key,
			Size:       size,
		})
		totalSize += size
	}

	return &models.UploadResult{
		BucketName:     c.config.BucketName,
		Site:           site,
		BackupID:       set.ID,
		Items:          items,
		TotalFiles:     len(items),
		TotalSizeBytes: totalSize,
		TotalSizeHuman: utils.FormatBytes(totalSize),
		OperationTime:  utils.FormatTime(startTime),
		UploadDuration: time.Since(startTime).String(),
	}, nil
}

// DownloadBackupSet fetches the four well-known artifacts of a set into
// destDir. The database dump must exist and be non-empty; the remaining
// three degrade gracefully and are left empty in the returned set.
func (c *Client) DownloadBackupSet(ctx context.Context, site, backupID, destDir string) (*models.BackupSet, error) {
	set := &models.BackupSet{ID: backupID}

	local, err := c.downloadArtifact(ctx, site, backupID, models.ArtifactDatabase, destDir)
	if err != nil {
		return nil, fmt.Errorf("mandatory database dump: %w", err)
	}
	set.Database = local

	optional := []struct {
		suffix string
		target *string
	}{
		{models.ArtifactPrivateFiles, &set.PrivateFiles},
		{models.ArtifactPublicFiles, &set.PublicFiles},
		{models.ArtifactSiteConfig, &set.SiteConfig},
	}
	for _, artifact := range optional {
		local, err := c.downloadArtifact(ctx, site, backupID, artifact.suffix, destDir)
		if err != nil {
			slog.Info("optional backup artifact unavailable, continuing without it",
				"site", site, "backup_id", backupID, "artifact", artifact.suffix, "reason", err)
			continue
		}
		*artifact.target = local
	}

	return set, nil
}

// ListBackupSets groups the objects under a site prefix by backup-set id.
func (c *Client) ListBackupSets(ctx context.Context, site string) (*models.BackupListing, error) {
	prefix := c.sitePrefix(site)

	sets := make(map[string]*models.BackupSetInfo)
	paginator := s3.NewListObjectsV2Paginator(c.s3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.config.BucketName),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		for _, obj := range page.Contents {
			rest := strings.TrimPrefix(*obj.Key, prefix)
			id, _, found := strings.Cut(rest, "/")
			if !found || id == "" {
				continue
			}
			info, ok := sets[id]
			if !ok {
				info = &models.BackupSetInfo{ID: id}
				sets[id] = info
			}
			info.Files++
			if obj.Size != nil {
				info.TotalSizeBytes += *obj.Size
			}
			if obj.LastModified != nil {
				modified := utils.FormatTime(*obj.LastModified)
				if modified > info.LastModified {
					info.LastModified = modified
				}
			}
		}
	}

	listing := &models.BackupListing{
		BucketName: c.config.BucketName,
		Site:       site,
	}
	for _, info := range sets {
		info.TotalSizeHuman = utils.FormatBytes(info.TotalSizeBytes)
		listing.Sets = append(listing.Sets, *info)
	}
	// Set ids start with a timestamp, so newest first is a reverse sort.
	sort.Slice(listing.Sets, func(i, j int) bool {
		return listing.Sets[i].ID > listing.Sets[j].ID
	})
	listing.TotalSets = len(listing.Sets)
	return listing, nil
}

func (c *Client) uploadFile(ctx context.Context, localPath, key string) (int64, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open file %s: %w", localPath, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat file %s: %w", localPath, err)
	}

	_, err = c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.config.BucketName),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentTypeFor(localPath)),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to upload to S3: %w", err)
	}
	return info.Size(), nil
}

func (c *Client) downloadArtifact(ctx context.Context, site, backupID, suffix, destDir string) (string, error) {
	key := c.objectKey(site, backupID, suffix)
	localPath := filepath.Join(destDir, backupID+"-"+suffix)

	file, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", localPath, err)
	}

	written, err := c.downloader.Download(ctx, file, &s3.GetObjectInput{
		Bucket: aws.String(c.config.BucketName),
		Key:    aws.String(key),
	})
	closeErr := file.Close()
	if err != nil {
		err = fmt.Errorf("failed to download s3://%s/%s: %w", c.config.BucketName, key, err)
	} else if closeErr != nil {
		err = fmt.Errorf("failed to finalize %s: %w", localPath, closeErr)
	}
	return finalizeArtifact(localPath, written, err)
}

// finalizeArtifact keeps a completed download only when it holds data;
// failed or empty downloads are removed so no partial file survives.
func finalizeArtifact(localPath string, written int64, downloadErr error) (string, error) {
	if downloadErr != nil {
		os.Remove(localPath)
		return "", downloadErr
	}
	if written == 0 {
		os.Remove(localPath)
		return "", fmt.Errorf("downloaded artifact %s is empty", filepath.Base(localPath))
	}
	return localPath, nil
}

func (c *Client) objectKey(site, backupID, suffix string) string {
	return path.Join(strings.Trim(c.config.BucketPrefix, "/"), site, backupID, backupID+"-"+suffix)
}

func (c *Client) sitePrefix(site string) string {
	return path.Join(strings.Trim(c.config.BucketPrefix, "/"), site) + "/"
}

func contentTypeFor(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".json"):
		return "application/json"
	case strings.HasSuffix(filename, ".gz"):
		return "application/gzip"
	}
	return "application/octet-stream"
}
