package interaction

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/beauty-dashboard-backend/internal/bracket"
)

func TestFileRepository_LipMaskRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewFileRepository(filepath.Join(t.TempDir(), "local_product_clicks.json"))

	stored, err := repo.Append(ctx, lipMask())
	require.NoError(t, err)
	assert.Equal(t, lipMask(), stored)

	all, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, lipMask(), all[0])
}

func TestFileRepository_AppendN(t *testing.T) {
	ctx := context.Background()
	repo := NewFileRepository(filepath.Join(t.TempDir(), "nested", "log.json"))

	const n = 25
	for i := 0; i < n; i++ {
		price := 100 * (i + 1)
		_, err := repo.Append(ctx, Record{
			Brand:       fmt.Sprintf("Brand %d", i),
			ProductName: "Thing",
			SkinType:    "Dry",
			PriceRange:  bracket.ForRecord(price),
			PriceValue:  price,
			Timestamp:   NewTimestamp(time.Date(2024, 5, 1, 0, 0, i, 0, time.UTC)),
		})
		require.NoError(t, err)
	}

	all, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, n)
	for i, r := range all {
		assert.Equal(t, fmt.Sprintf("Brand %d", i), r.Brand)
		assert.Equal(t, 100*(i+1), r.PriceValue)
	}
}

func TestFileRepository_AssignsTimestamp(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "log.json"))
	fixed := time.Date(2025, 7, 4, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	rec := lipMask()
	rec.Timestamp = Timestamp{}
	stored, err := repo.Append(context.Background(), rec)
	require.NoError(t, err)
	assert.True(t, stored.Timestamp.Valid)
	assert.True(t, fixed.Equal(stored.Timestamp.Time))
}

func TestFileRepository_MissingAndEmpty(t *testing.T) {
	dir := t.TempDir()

	all, err := NewFileRepository(filepath.Join(dir, "missing.json")).ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o644))
	all, err = NewFileRepository(empty).ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFileRepository_CorruptFileIsNotOverwritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"oops":`), 0o644))
	repo := NewFileRepository(path)

	_, err := repo.Append(context.Background(), lipMask())
	assert.ErrorIs(t, err, ErrPersistence)

	_, err = repo.ReadAll(context.Background())
	assert.ErrorIs(t, err, ErrPersistence)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"oops":`, string(data))
}

func TestFileRepository_MalformedRecordsKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	legacy := `[
  {"brand": "Clinique", "product_name": "Even Better Clinical", "skin_type": "Normal", "price_range": "Luxury", "price_value": 4200, "timestamp": "2024-02-10T08:15:00.000001"},
  {"brand": "Laneige", "product_name": "Water Sleeping Mask EX", "skin_type": "Dry", "price_range": "Mid-range", "price_value": 2400, "timestamp": "last tuesday"},
  "not an object"
]`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))
	repo := NewFileRepository(path)

	all, err := repo.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].Timestamp.Valid)
	assert.Equal(t, "Laneige", all[1].Brand)
	assert.False(t, all[1].Timestamp.Valid)
	assert.Equal(t, Record{}, all[2])

	_, err = repo.Append(context.Background(), lipMask())
	require.NoError(t, err)
	all, err = repo.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestFileRepository_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	repo := NewFileRepository(path)

	rec := lipMask()
	rec.Brand = "Laneige & Co <Seoul>"
	_, err := repo.Append(context.Background(), rec)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "[\n  {\n    \"brand\""))
	assert.Contains(t, text, "Laneige & Co <Seoul>")

	var raws []map[string]any
	require.NoError(t, json.Unmarshal(data, &raws))
	require.Len(t, raws, 1)
	for _, k := range []string{"brand", "product_name", "skin_type", "price_range", "price_value", "timestamp"} {
		assert.Contains(t, raws[0], k)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestFileRepository_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileRepository(filepath.Join(t.TempDir(), "log.json")).Append(ctx, lipMask())
	assert.ErrorIs(t, err, context.Canceled)
}
