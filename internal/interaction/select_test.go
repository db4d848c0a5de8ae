package interaction

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSelect_LocalFileWhenNothingConfigured(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "local_product_clicks.json")

	repo := Select(context.Background(), BackendConfig{
		KeyPaths:  []string{filepath.Join(dir, "docstore-key.json"), "~/definitely-not-here/docstore-key.json"},
		LocalFile: local,
	}, nil)

	fr, ok := repo.(*FileRepository)
	require.True(t, ok)
	assert.Equal(t, local, fr.Path())
	assert.Equal(t, BackendFile, repo.Backend())
}

func TestSelect_InvalidCredentialFallsBack(t *testing.T) {
	dir := t.TempDir()
	key := filepath.Join(dir, "docstore-key.json")
	require.NoError(t, os.WriteFile(key, []byte(`{"uri": `), 0o600))

	core, logs := observer.New(zap.WarnLevel)
	repo := Select(context.Background(), BackendConfig{
		KeyPaths:  []string{key},
		LocalFile: filepath.Join(dir, "log.json"),
	}, zap.New(core))

	assert.Equal(t, BackendFile, repo.Backend())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "document store unavailable, falling back", logs.All()[0].Message)
}

func TestSelect_BadURIFallsBack(t *testing.T) {
	dir := t.TempDir()
	key := filepath.Join(dir, "docstore-key.json")
	require.NoError(t, os.WriteFile(key, []byte(`{"uri": "bogus://nowhere", "database": "beauty"}`), 0o600))

	core, logs := observer.New(zap.WarnLevel)
	repo := Select(context.Background(), BackendConfig{
		KeyPaths:       []string{key},
		LocalFile:      filepath.Join(dir, "log.json"),
		ConnectTimeout: time.Second,
	}, zap.New(core))

	assert.Equal(t, BackendFile, repo.Backend())
	assert.Equal(t, 1, logs.Len())
}

func TestSelect_UnreachablePostgresFallsBack(t *testing.T) {
	dir := t.TempDir()

	core, logs := observer.New(zap.WarnLevel)
	repo := Select(context.Background(), BackendConfig{
		DatabaseURL:    "postgres://beauty@127.0.0.1:1/beauty?sslmode=disable&connect_timeout=1",
		LocalFile:      filepath.Join(dir, "log.json"),
		ConnectTimeout: 2 * time.Second,
	}, zap.New(core))

	assert.Equal(t, BackendFile, repo.Backend())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "postgres unavailable, falling back", logs.All()[0].Message)
}

func TestLoadCredential(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"uri":"mongodb://localhost:27017","database":"beauty","collection":"clicks"}`), 0o600))
	cred, err := LoadCredential(good)
	require.NoError(t, err)
	assert.Equal(t, "beauty", cred.Database)
	assert.Equal(t, "clicks", cred.Collection)

	noDB := filepath.Join(dir, "nodb.json")
	require.NoError(t, os.WriteFile(noDB, []byte(`{"uri":"mongodb://localhost:27017"}`), 0o600))
	_, err = LoadCredential(noDB)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "docstore-key.json"), expandHome("~/docstore-key.json"))
	assert.Equal(t, "relative/key.json", expandHome("relative/key.json"))
}
