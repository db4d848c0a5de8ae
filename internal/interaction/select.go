package interaction

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	defaultPageSize       = 1000
	defaultCollection     = "product_clicks"
	defaultConnectTimeout = 5 * time.Second
)

// BackendConfig decides which Repository Select builds.
type BackendConfig struct {
	// KeyPaths are probed in order for a document-store credential file.
	KeyPaths       []string
	DatabaseURL    string
	LocalFile      string
	Collection     string
	Table          string
	PageSize       int
	ConnectTimeout time.Duration
}

// Credential is the document-store key file.
type Credential struct {
	URI        string `json:"uri"`
	Database   string `json:"database"`
	Collection string `json:"collection"`
}

// Select builds the interaction log once at startup. The document store wins
// when a credential file is found, then Postgres when a database URL is set,
// then the local file. A backend that cannot be used is logged and skipped;
// Select always returns a usable repository.
func Select(ctx context.Context, cfg BackendConfig, log *zap.Logger) Repository {
	if log == nil {
		log = zap.NewNop()
	}

	if path, ok := findKeyFile(cfg.KeyPaths); ok {
		repo, err := openMongo(ctx, path, cfg)
		if err == nil {
			log.Info("interaction log: document store", zap.String("key_file", path))
			return repo
		}
		log.Warn("document store unavailable, falling back", zap.String("key_file", path), zap.Error(err))
	}

	if cfg.DatabaseURL != "" {
		repo, err := openPostgres(ctx, cfg)
		if err == nil {
			log.Info("interaction log: postgres", zap.String("table", tableName(cfg)))
			return repo
		}
		log.Warn("postgres unavailable, falling back", zap.Error(err))
	}

	log.Info("interaction log: local file", zap.String("path", cfg.LocalFile))
	return NewFileRepository(cfg.LocalFile)
}

func findKeyFile(paths []string) (string, bool) {
	for _, p := range paths {
		p = expandHome(p)
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p
}

// LoadCredential reads and checks a document-store key file.
func LoadCredential(path string) (Credential, error) {
	const op = "interaction.LoadCredential"

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Credential{}, fmt.Errorf("%s: %w", op, err)
		}
		return Credential{}, fmt.Errorf("%s: %w: %w", op, ErrConfiguration, err)
	}
	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return Credential{}, fmt.Errorf("%s: %w: %w", op, ErrConfiguration, err)
	}
	if cred.URI == "" {
		return Credential{}, fmt.Errorf("%s: %w: uri is required", op, ErrConfiguration)
	}
	if cred.Database == "" {
		return Credential{}, fmt.Errorf("%s: %w: database is required", op, ErrConfiguration)
	}
	return cred, nil
}

func openMongo(ctx context.Context, keyPath string, cfg BackendConfig) (*MongoRepository, error) {
	const op = "interaction.openMongo"

	cred, err := LoadCredential(keyPath)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout(cfg))
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cred.URI))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrConfiguration, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%s: %w: %w", op, ErrConfiguration, err)
	}

	name := cred.Collection
	if name == "" {
		name = cfg.Collection
	}
	if name == "" {
		name = defaultCollection
	}
	return NewMongoRepository(client.Database(cred.Database).Collection(name), pageSize(cfg)), nil
}

func openPostgres(ctx context.Context, cfg BackendConfig) (*PostgresRepository, error) {
	const op = "interaction.openPostgres"

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrConfiguration, err)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout(cfg))
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w: %w", op, ErrConfiguration, err)
	}
	return NewPostgresRepository(db, tableName(cfg), pageSize(cfg)), nil
}

func pageSize(cfg BackendConfig) int {
	if cfg.PageSize > 0 {
		return cfg.PageSize
	}
	return defaultPageSize
}

func connectTimeout(cfg BackendConfig) time.Duration {
	if cfg.ConnectTimeout > 0 {
		return cfg.ConnectTimeout
	}
	return defaultConnectTimeout
}

func tableName(cfg BackendConfig) string {
	if cfg.Table != "" {
		return cfg.Table
	}
	return defaultCollection
}
