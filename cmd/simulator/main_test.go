package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/chronicle/internal/config"
	"github.com/udisondev/chronicle/internal/game/event"
	"github.com/udisondev/chronicle/internal/model"
)

// runCLI запускает команду с конфигом по умолчанию и встроенными таблицами.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvPath, filepath.Join(t.TempDir(), "missing.yaml"))

	var out bytes.Buffer
	err := run(context.Background(), args, &out)
	return out.String(), err
}

func TestBattle_PrintsDeterministicLog(t *testing.T) {
	first, err := runCLI(t, "battle", "-stage", "1", "-seed", "42")
	require.NoError(t, err)

	log, err := event.Decode([]byte(strings.TrimSpace(first)))
	require.NoError(t, err)
	require.Positive(t, log.Len())
	assert.Equal(t, event.KindSpawnWave, log.At(0).Kind())
	last, _ := log.Last()
	assert.Equal(t, event.KindWaveTurnEnd, last.Kind())

	second, err := runCLI(t, "battle", "-stage", "1", "-seed", "42")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBattle_StoreNeedsDatabase(t *testing.T) {
	_, err := runCLI(t, "battle", "-seed", "1", "-store")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestVerify(t *testing.T) {
	out, err := runCLI(t, "verify", "-stage", "1", "-seeds", "16")
	require.NoError(t, err)
	assert.Contains(t, out, "verified 16 seeds on stage 1")

	_, err = runCLI(t, "verify", "-seeds", "0")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestEnhance(t *testing.T) {
	out, err := runCLI(t, "enhance", "-level", "0", "-seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "success=true level 0 -> 1")

	_, err = runCLI(t, "enhance", "-level", "3", "-balance", "0")
	assert.ErrorIs(t, err, model.ErrInsufficientFunds)
}

func TestRun_Usage(t *testing.T) {
	_, err := runCLI(t)
	assert.ErrorIs(t, err, errUsage)

	_, err = runCLI(t, "teleport")
	assert.ErrorIs(t, err, errUsage)

	_, err = runCLI(t, "battle", "-bogus")
	assert.Error(t, err)
}

func TestLoadout_RespectsSlots(t *testing.T) {
	inv := model.Inventory{
		Equipment: []model.Equipment{
			{ItemID: [16]byte{1}, SubType: model.SubTypeWeapon},
			{ItemID: [16]byte{2}, SubType: model.SubTypeWeapon},
			{ItemID: [16]byte{3}, SubType: model.SubTypeArmor},
		},
	}
	equipment, costumes := loadout(inv)
	assert.Len(t, equipment, 2)
	assert.Empty(t, costumes)
	assert.NoError(t, inv.Equip(equipment, costumes))
}
