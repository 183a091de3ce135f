package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Provider selects the S3-compatible backend for anchor storage.
type S3Provider string

const (
	S3ProviderAWS    S3Provider = "aws"
	S3ProviderWasabi S3Provider = "wasabi"
)

// wasabiEndpoints maps regions to Wasabi endpoints.
var wasabiEndpoints = map[string]string{
	"us-east-1":      "s3.us-east-1.wasabisys.com",
	"us-east-2":      "s3.us-east-2.wasabisys.com",
	"us-west-1":      "s3.us-west-1.wasabisys.com",
	"eu-central-1":   "s3.eu-central-1.wasabisys.com",
	"eu-west-1":      "s3.eu-west-1.wasabisys.com",
	"ap-northeast-1": "s3.ap-northeast-1.wasabisys.com",
	"ap-southeast-1": "s3.ap-southeast-1.wasabisys.com",
}

// AnchorConfig configures external hash anchoring.
type AnchorConfig struct {
	Provider        S3Provider
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	KeyPrefix       string // e.g. "privacy-anchors/"
	WasabiEndpoint  string
	RetentionYears  int
}

// NewS3Client builds an S3 client for AWS or Wasabi.
func NewS3Client(ctx context.Context, cfg AnchorConfig) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.Provider == S3ProviderWasabi {
		endpoint := cfg.WasabiEndpoint
		if endpoint == "" {
			if e, ok := wasabiEndpoints[cfg.Region]; ok {
				endpoint = e
			} else {
				return nil, fmt.Errorf("unknown Wasabi region: %s", cfg.Region)
			}
		}
		return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String("https://" + endpoint)
			o.UsePathStyle = true // Wasabi requires path-style
		}), nil
	}

	return s3.NewFromConfig(awsCfg), nil
}

// Anchorer uploads daily chain roots to WORM storage. The anchor is the only
// trusted element of the integrity design; DB rows and the chain itself can
// be recomputed by an attacker with DB access, the locked object cannot.
type Anchorer struct {
	repo     *Repository
	s3Client *s3.Client
	cfg      AnchorConfig
	logger   *Logger
}

func NewAnchorer(repo *Repository, s3Client *s3.Client, cfg AnchorConfig, logger *Logger) *Anchorer {
	if cfg.RetentionYears <= 0 {
		cfg.RetentionYears = 1
	}
	return &Anchorer{repo: repo, s3Client: s3Client, cfg: cfg, logger: logger}
}

type anchorDocument struct {
	AnchorDate   string `json:"anchor_date"`
	RootHash     string `json:"root_hash"`
	EventCount   int64  `json:"event_count"`
	FirstEventID int64  `json:"first_event_id"`
	LastEventID  int64  `json:"last_event_id"`
	CreatedAt    string `json:"created_at"`
}

// AnchorDay computes the root hash for one day and uploads it under Object
// Lock. A day with no events is skipped, not an error.
func (a *Anchorer) AnchorDay(ctx context.Context, date time.Time) error {
	stats, err := a.repo.ComputeDailyRoot(ctx, date)
	if err != nil {
		return err
	}
	if stats.EventCount == 0 {
		return nil
	}

	doc := anchorDocument{
		AnchorDate:   date.UTC().Format("2006-01-02"),
		RootHash:     stats.RootHash,
		EventCount:   stats.EventCount,
		FirstEventID: stats.FirstEventID,
		LastEventID:  stats.LastEventID,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("%s%s.json", a.cfg.KeyPrefix, doc.AnchorDate)
	_, err = a.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:                    aws.String(a.cfg.Bucket),
		Key:                       aws.String(key),
		Body:                      bytes.NewReader(body),
		ContentType:               aws.String("application/json"),
		ObjectLockMode:            types.ObjectLockModeGovernance,
		ObjectLockRetainUntilDate: aws.Time(time.Now().AddDate(a.cfg.RetentionYears, 0, 0)),
	})
	if err != nil {
		return fmt.Errorf("failed to upload anchor %s: %w", key, err)
	}

	if a.logger != nil {
		_ = a.logger.Record(ctx, Event{
			Event: EventAnchorCreated,
			Details: map[string]interface{}{
				"anchor_date": doc.AnchorDate,
				"root_hash":   doc.RootHash,
				"event_count": doc.EventCount,
				"s3_key":      key,
			},
		})
	}
	return nil
}

// Run anchors the previous day once per day until ctx is canceled. Anchor
// failures are warnings; the next cycle retries.
func (a *Anchorer) Run(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			yesterday := time.Now().UTC().AddDate(0, 0, -1)
			if err := a.AnchorDay(ctx, yesterday); err != nil {
				a.logger.zapLogger.Warn("anchor upload failed: " + err.Error())
			}
		}
	}
}
