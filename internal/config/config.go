package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Backend selects which repository implementation the process runs against.
const (
	BackendRemote = "remote"
	BackendLocal  = "local"
)

// Config holds all configuration values from environment.
type Config struct {
	AppPort   string
	LogLevel  string
	LogFormat string

	// Backend selection: "remote" (hosted document database) or "local"
	// (durable key-value fallback). Both implement the same store interfaces.
	Backend string

	// Remote document database settings.
	RemoteEndpoint        string
	RemoteProjectID       string
	RemoteAPIKey          string
	RemoteDatabaseID      string
	DesignersCollectionID string
	ObjectsCollectionID   string
	// ObjectPageLimit bounds the objects read used for count aggregation.
	ObjectPageLimit int

	// Local fallback store settings.
	LocalDBPath string

	// Snapshot export settings (optional; snapshots are disabled when the
	// endpoint is empty).
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioSSL       bool

	// SnapshotInterval enables periodic scene snapshot export when positive.
	SnapshotInterval time.Duration

	// Editor settings.
	AutosaveDebounce time.Duration
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	minioSSL := false
	if sslEnv := os.Getenv("MINIO_SSL"); sslEnv != "" {
		val, err := strconv.ParseBool(sslEnv)
		if err != nil {
			return nil, fmt.Errorf("invalid MINIO_SSL value: %v", err)
		}
		minioSSL = val
	}
	objectPageLimit := 1000
	if limitEnv := os.Getenv("OBJECT_PAGE_LIMIT"); limitEnv != "" {
		val, err := strconv.Atoi(limitEnv)
		if err == nil && val > 0 {
			objectPageLimit = val
		}
	}
	snapshotInterval := time.Duration(0)
	if intervalEnv := os.Getenv("SNAPSHOT_INTERVAL_MIN"); intervalEnv != "" {
		val, err := strconv.Atoi(intervalEnv)
		if err == nil && val > 0 {
			snapshotInterval = time.Duration(val) * time.Minute
		}
	}
	autosaveDebounce := 300 * time.Millisecond
	if debounceEnv := os.Getenv("AUTOSAVE_DEBOUNCE_MS"); debounceEnv != "" {
		val, err := strconv.Atoi(debounceEnv)
		if err == nil && val > 0 {
			autosaveDebounce = time.Duration(val) * time.Millisecond
		}
	}
	backend := os.Getenv("REGISTRY_BACKEND")
	if backend == "" {
		backend = BackendRemote
	}
	localPath := os.Getenv("LOCAL_DB_PATH")
	if localPath == "" {
		localPath = "registry.db"
	}
	cfg := &Config{
		AppPort:   os.Getenv("REGISTRY_PORT"),
		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: os.Getenv("LOG_FORMAT"),
		Backend:   backend,

		RemoteEndpoint:        os.Getenv("REMOTE_ENDPOINT"),
		RemoteProjectID:       os.Getenv("REMOTE_PROJECT_ID"),
		RemoteAPIKey:          os.Getenv("REMOTE_API_KEY"),
		RemoteDatabaseID:      os.Getenv("REMOTE_DATABASE_ID"),
		DesignersCollectionID: os.Getenv("DESIGNERS_COLLECTION_ID"),
		ObjectsCollectionID:   os.Getenv("OBJECTS_COLLECTION_ID"),
		ObjectPageLimit:       objectPageLimit,

		LocalDBPath: localPath,

		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    os.Getenv("MINIO_BUCKET"),
		MinioSSL:       minioSSL,

		SnapshotInterval: snapshotInterval,
		AutosaveDebounce: autosaveDebounce,
	}
	// Basic validation for required fields
	switch cfg.Backend {
	case BackendRemote:
		if cfg.RemoteEndpoint == "" || cfg.RemoteProjectID == "" || cfg.RemoteAPIKey == "" {
			return nil, fmt.Errorf("remote backend configuration is incomplete")
		}
		if cfg.RemoteDatabaseID == "" || cfg.DesignersCollectionID == "" || cfg.ObjectsCollectionID == "" {
			return nil, fmt.Errorf("remote database/collection configuration is incomplete")
		}
	case BackendLocal:
		if cfg.LocalDBPath == "" {
			return nil, fmt.Errorf("local backend requires LOCAL_DB_PATH")
		}
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	if cfg.MinioEndpoint != "" {
		if cfg.MinioAccessKey == "" || cfg.MinioSecretKey == "" || cfg.MinioBucket == "" {
			return nil, fmt.Errorf("minio configuration is incomplete")
		}
	}
	return cfg, nil
}

// SnapshotsEnabled reports whether snapshot export storage is configured.
func (c *Config) SnapshotsEnabled() bool {
	return c.MinioEndpoint != ""
}
