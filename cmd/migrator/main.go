package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/wichananm65/beauty-dashboard-backend/internal/logger"
)

const (
	databaseURLFlag    = "database-url"
	migrationsPathFlag = "migrations-path"
)

// migrationLogger adapts zap to migrate.Logger.
type migrationLogger struct {
	log     *zap.SugaredLogger
	verbose bool
}

func (ml *migrationLogger) Printf(format string, v ...any) {
	ml.log.Infof(strings.TrimSuffix(format, "\n"), v...)
}

func (ml *migrationLogger) Verbose() bool {
	return ml.verbose
}

func main() {
	_ = godotenv.Load()

	databaseURL := pflag.StringP(databaseURLFlag, "d", os.Getenv("DATABASE_URL"), "postgres connection string")
	migrationsPath := pflag.StringP(migrationsPathFlag, "m", "migrations", "directory holding the migration files")
	down := pflag.Bool("down", false, "roll back every migration")
	verbose := pflag.BoolP("verbose", "v", false, "log every migration step")
	pflag.Parse()

	log, err := logger.New("info", "production")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(2)
	}
	defer log.Sync()

	if *databaseURL == "" {
		log.Error("too few args", zap.Error(fmt.Errorf("--%s flag or DATABASE_URL: required", databaseURLFlag)))
		os.Exit(2)
	}

	if err := run(*databaseURL, *migrationsPath, *down, &migrationLogger{log: log.Sugar(), verbose: *verbose}); err != nil {
		log.Error("failed to migrate", zap.Error(err))
		os.Exit(2)
	}
}

func run(databaseURL, migrationsPath string, down bool, ml *migrationLogger) error {
	m, err := migrate.New("file://"+migrationsPath, pgx5URL(databaseURL))
	if err != nil {
		return err
	}
	defer m.Close()
	m.Log = ml

	if down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		ml.Printf("no migrations to apply")
		return nil
	}
	if err != nil {
		return err
	}
	ml.Printf("migrations applied")
	return nil
}

// pgx5URL rewrites a postgres:// URL to the scheme the pgx/v5 driver registers.
func pgx5URL(databaseURL string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(databaseURL, scheme) {
			return "pgx5://" + strings.TrimPrefix(databaseURL, scheme)
		}
	}
	return databaseURL
}
