package storage

import (
	"bytes"
	"context"
	"io/fs"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"rug-quote/internal/calculator"
	"rug-quote/internal/storage/migrations"
	"rug-quote/pkg/redis"
)

func sampleRecord(t *testing.T) QuoteRecord {
	t.Helper()
	calc, err := calculator.New(calculator.DefaultPricingConfig())
	require.NoError(t, err)

	sel := calculator.DefaultSelection()
	sel.SetDimensions(8, 0, 10, 0)
	sel.IncludePad = true
	q, err := calc.Quote(sel.Dimensions(), sel.Material, sel.AddOns())
	require.NoError(t, err)

	return NewQuoteRecord(99, sel, q, time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC))
}

func TestNewQuoteRecord(t *testing.T) {
	rec := sampleRecord(t)

	_, err := uuid.Parse(rec.Reference)
	require.NoError(t, err)
	assert.Equal(t, int64(99), rec.UserID)
	assert.Equal(t, "rectangle", rec.Shape)
	assert.Equal(t, 8.0, rec.WidthFt)
	assert.Equal(t, 10.0, rec.LengthFt)
	assert.Equal(t, "classic-detached", rec.PadType)
	assert.Equal(t, 80.0, rec.AreaSqFt)
	assert.Equal(t, 1905.0, rec.FinalPrice)
	assert.Equal(t, "8′ × 10′", rec.DisplaySize)
	assert.Equal(t, StatusQuoted, rec.Status)
}

func TestNewQuoteRecord_NoPad(t *testing.T) {
	sel := calculator.DefaultSelection()
	rec := NewQuoteRecord(1, sel, calculator.Quote{}, time.Now())
	assert.Empty(t, rec.PadType)
	assert.NotEqual(t, sampleRecord(t).Reference, rec.Reference)
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusQuoted, StatusInCart, StatusCartFailed, StatusOrdered, StatusCancelled} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("shipped"))
}

func TestConfigDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "rugs"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=rugs sslmode=disable", cfg.DSN())

	cfg.SSLMode = "require"
	assert.Contains(t, cfg.DSN(), "sslmode=require")
}

func TestBuildQuotesWorkbook(t *testing.T) {
	rec := sampleRecord(t)
	rec.ID = 7

	buf, err := BuildQuotesWorkbook([]QuoteRecord{rec})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(quotesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, quoteHeaders, rows[0])
	assert.Equal(t, "7", rows[1][0])
	assert.Equal(t, rec.Reference, rows[1][1])
	assert.Equal(t, "rectangle", rows[1][3])
	assert.Equal(t, "8′ × 10′", rows[1][4])
	assert.Equal(t, "1905", rows[1][12])
	assert.Equal(t, StatusQuoted, rows[1][13])
	assert.Equal(t, "2026-03-01 12:30", rows[1][14])
}

func TestBuildQuotesWorkbook_Empty(t *testing.T) {
	buf, err := BuildQuotesWorkbook(nil)
	require.NoError(t, err)
	assert.Positive(t, buf.Len())
}

type fakeCounter struct {
	counts  map[string]int64
	expires map[string]time.Duration
}

func (f *fakeCounter) Incr(_ context.Context, key string) (int64, error) {
	f.counts[key]++
	return f.counts[key], nil
}

func (f *fakeCounter) Expire(_ context.Context, key string, d time.Duration) (bool, error) {
	f.expires[key] = d
	return true, nil
}

func TestRateLimiter(t *testing.T) {
	ctx := context.Background()
	counter := &fakeCounter{counts: map[string]int64{}, expires: map[string]time.Duration{}}
	rl := NewRateLimiter(counter)

	for i := 0; i < 3; i++ {
		over, err := rl.Exceeded(ctx, 1, "cart", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, over, "call %d", i+1)
	}

	over, err := rl.Exceeded(ctx, 1, "cart", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, over)

	assert.Equal(t, time.Minute, counter.expires["ratelimit:1:cart"])

	over, err = rl.Exceeded(ctx, 2, "cart", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, over)
}

type fakeCache struct {
	data map[string][]byte
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := f.data[key]
	if !ok {
		return nil, redis.ErrNotFound
	}
	return v, nil
}

func (f *fakeCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	f.data[key] = data
	return nil
}

func (f *fakeCache) Del(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func TestGetMaterialMultipliers_CacheHit(t *testing.T) {
	cache := &fakeCache{data: map[string][]byte{
		materialsCacheKey: []byte(`{"wool":1,"bamboo":0.85}`),
	}}
	s := &PostgresStorage{cache: cache, logger: zap.NewNop()}

	materials, err := s.GetMaterialMultipliers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"wool": 1, "bamboo": 0.85}, materials)
}

func TestUpsertMaterial_RejectsBadMultiplier(t *testing.T) {
	s := &PostgresStorage{cache: &fakeCache{data: map[string][]byte{}}, logger: zap.NewNop()}

	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := s.UpsertMaterial(context.Background(), "mohair", bad)
		assert.ErrorContains(t, err, "multiplier must be a positive number", "%v", bad)
	}
}

func TestMigrations_NoMaterialSeed(t *testing.T) {
	data, err := fs.ReadFile(migrations.FS, "00001_create_materials.sql")
	require.NoError(t, err)
	assert.NotContains(t, strings.ToUpper(string(data)), "INSERT")

	data, err = fs.ReadFile(migrations.FS, "00003_drop_material_seed.sql")
	require.NoError(t, err)
	up := strings.SplitN(string(data), "-- +goose Down", 2)[0]
	assert.Contains(t, up, "DELETE FROM materials")
	assert.Contains(t, up, "CHECK (multiplier <> 'NaN')")
}

func TestParseMigrateCommand(t *testing.T) {
	for _, in := range []string{"up", "down", "status"} {
		cmd, err := ParseMigrateCommand(in)
		require.NoError(t, err)
		assert.Equal(t, MigrateCommand(in), cmd)
	}

	_, err := ParseMigrateCommand("redo")
	assert.ErrorContains(t, err, "unknown migrate command")
}

func TestMigrate_UnknownCommand(t *testing.T) {
	err := Migrate(context.Background(), nil, MigrateCommand("reset"), zap.NewNop())
	assert.ErrorContains(t, err, "storage.Migrate")
}
