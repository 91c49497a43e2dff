package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rug-quote/internal/calculator"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPriceRectangle(t *testing.T) {
	out, err := execute(t, "price", "-w", "8", "-l", "10")
	require.NoError(t, err)

	assert.Contains(t, out, "8′ × 10′ wool rug, Rectangle")
	assert.Contains(t, out, "Area:  80.0 sq ft")
	assert.Contains(t, out, "Price: $1,805")
}

func TestPriceRound(t *testing.T) {
	out, err := execute(t, "price", "--shape", "round", "--width", "6")
	require.NoError(t, err)

	assert.Contains(t, out, "6′ diameter")
	assert.Contains(t, out, "$750")
}

func TestPriceJSON(t *testing.T) {
	out, err := execute(t, "price", "-w", "8", "-l", "10", "--protection", "--json")
	require.NoError(t, err)

	var res priceResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 1865.0, res.Quote.FinalPrice)
	assert.True(t, res.Quote.Valid)
	assert.Equal(t, "Yes", res.Properties[calculator.PropProtection])
	assert.Equal(t, "$1,865", res.Properties[calculator.PropPrice])
}

func TestPriceMetricInput(t *testing.T) {
	out, err := execute(t, "price", "-u", "cm", "-w", "240", "-l", "300")
	require.NoError(t, err)
	assert.Contains(t, out, "7′ 10″ × 9′ 10″")
}

func TestPriceWarnsOnInvalidSize(t *testing.T) {
	out, err := execute(t, "price", "-w", "20", "-l", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "Warning")
	assert.Contains(t, out, "Width cannot exceed 15 feet")
}

func TestPriceRequiresLength(t *testing.T) {
	_, err := execute(t, "price", "-w", "8")
	assert.ErrorContains(t, err, "--length is required")
}

func TestPriceStrictUnknownMaterial(t *testing.T) {
	_, err := execute(t, "price", "-w", "8", "-l", "10", "-m", "mohair")
	require.NoError(t, err)

	_, err = execute(t, "--strict", "price", "-w", "8", "-l", "10", "-m", "mohair")
	assert.ErrorIs(t, err, calculator.ErrUnknownCategory)
}

func TestPricingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_price_per_sqft: 30\nmaterials:\n  mohair: 2\n"), 0o644))

	out, err := execute(t, "--pricing", path, "price", "-w", "5", "-l", "5", "-m", "mohair")
	require.NoError(t, err)
	assert.Contains(t, out, "$1,500")
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "validate", "-w", "8", "-l", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "ok")

	out, err = execute(t, "validate", "-s", "runner", "-w", "3", "-l", "5")
	assert.ErrorIs(t, err, errInvalidSize)
	assert.NotEmpty(t, strings.TrimSpace(out))
}

func TestConvert(t *testing.T) {
	out, err := execute(t, "convert", "240", "--from", "cm", "--to", "ft")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "7.874"), out)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "ft"), out)

	out, err = execute(t, "convert", "5", "--from", "yd", "--to", "ft")
	require.NoError(t, err)
	assert.Equal(t, "5 ft\n", out)

	_, err = execute(t, "--strict", "convert", "5", "--from", "yd", "--to", "ft")
	assert.ErrorIs(t, err, calculator.ErrUnknownCategory)

	_, err = execute(t, "convert", "five")
	assert.Error(t, err)
}

func TestRooms(t *testing.T) {
	out, err := execute(t, "rooms")
	require.NoError(t, err)
	assert.Contains(t, out, "living-room")
	assert.Contains(t, out, "Queen Bed")

	out, err = execute(t, "rooms", "--json")
	require.NoError(t, err)
	var rooms []calculator.Room
	require.NoError(t, json.Unmarshal([]byte(out), &rooms))
	assert.Len(t, rooms, 4)
}
