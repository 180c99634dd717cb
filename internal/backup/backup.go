// Package backup snapshots the SQLite database, encrypts the snapshot, and
// uploads it to S3-compatible storage.
package backup

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3Client is the subset of the S3 API the manager uses; narrowed for
// testability.
type s3Client interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config holds backup settings. Backups are disabled unless Bucket,
// AccessKey, SecretKey, and Passphrase are all set.
type Config struct {
	Endpoint   string
	Bucket     string
	Region     string
	AccessKey  string
	SecretKey  string
	Passphrase string
}

// State represents the backup manager state.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StateDisabled State = "disabled"
	StateError    State = "error"
)

// Status is the current backup manager status.
type Status struct {
	State      State      `json:"state"`
	LastBackup *time.Time `json:"last_backup,omitempty"`
	Error      string     `json:"error,omitempty"`
}

type Manager struct {
	mu     sync.Mutex
	cfg    Config
	status Status
	db     *sql.DB
	client s3Client
	logger *slog.Logger
}

func NewManager(cfg Config, db *sql.DB, logger *slog.Logger) *Manager {
	m := &Manager{
		cfg:    cfg,
		db:     db,
		logger: logger,
		status: Status{State: StateDisabled},
	}
	if cfg.Bucket != "" && cfg.AccessKey != "" && cfg.SecretKey != "" && cfg.Passphrase != "" {
		m.client = newS3Client(cfg)
		m.status.State = StateIdle
	}
	return m
}

func newS3Client(cfg Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

// Enabled reports whether the manager has a configured destination.
func (m *Manager) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.client != nil
}

// Status returns the current backup status.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// BackupNow snapshots, encrypts, and uploads the database. One backup runs
// at a time; the object key embeds the UTC timestamp.
func (m *Manager) BackupNow(ctx context.Context) error {
	m.mu.Lock()
	if m.client == nil {
		m.mu.Unlock()
		return fmt.Errorf("backup not configured")
	}
	if m.status.State == StateRunning {
		m.mu.Unlock()
		return fmt.Errorf("backup already in progress")
	}
	m.status.State = StateRunning
	m.status.Error = ""
	m.mu.Unlock()

	err := m.run(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.status.State = StateError
		m.status.Error = err.Error()
		m.logger.Error("backup failed", "error", err)
		return err
	}
	now := time.Now().UTC()
	m.status.State = StateIdle
	m.status.LastBackup = &now
	m.logger.Info("backup complete", "bucket", m.cfg.Bucket)
	return nil
}

func (m *Manager) run(ctx context.Context) error {
	snapshot, err := m.snapshot()
	if err != nil {
		return err
	}

	encrypted, err := Encrypt(snapshot, m.cfg.Passphrase)
	if err != nil {
		return fmt.Errorf("encrypt snapshot: %w", err)
	}

	key := fmt.Sprintf("kidtask/%s.db.enc", time.Now().UTC().Format("20060102T150405Z"))
	_, err = m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(m.cfg.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(encrypted),
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}

// snapshot writes a consistent copy of the database to a temp file via
// VACUUM INTO and returns its contents.
func (m *Manager) snapshot() ([]byte, error) {
	dir, err := os.MkdirTemp("", "kidtask-backup-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "snapshot.db")
	if _, err := m.db.Exec(`VACUUM INTO ?`, path); err != nil {
		return nil, fmt.Errorf("vacuum into: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return data, nil
}
