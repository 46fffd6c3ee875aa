package stats

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/chronicle/internal/data"
	"github.com/udisondev/chronicle/internal/model"
	"github.com/udisondev/chronicle/internal/testutil"
)

func playerRow(t *testing.T, tables *data.Tables) data.CharacterRow {
	t.Helper()
	row, ok := tables.Characters.Get(testutil.CharPlayer)
	require.True(t, ok)
	return row
}

func TestResolve_LevelGrowth(t *testing.T) {
	tables := testutil.Tables()
	row := playerRow(t, tables)

	tests := []struct {
		name    string
		level   int32
		wantHP  int64
		wantATK int64
	}{
		{"level 1", 1, 100, 20},
		{"level 3", 3, 120, 24},
		{"below 1 clamps", 0, 100, 20},
		{"above max clamps", 99, 140, 28},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tables, row, tt.level, nil, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHP, got.HP())
			assert.Equal(t, tt.wantATK, got.ATK())
			assert.Zero(t, got.Optional)
		})
	}
}

func TestResolve_Equipment(t *testing.T) {
	tables := testutil.Tables()
	row := playerRow(t, tables)

	sword := testutil.Equipment(tables, testutil.EquipSword, 0, 1)
	ring := testutil.Equipment(tables, testutil.EquipRing, 0, 2)

	// сначала flat, затем процент: (20 + 10) * 110%
	got, err := Resolve(tables, row, 1, []model.Equipment{ring, sword}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(33), got.ATK())

	// уровень заточки масштабирует flat: 10 + 10*5*10% = 15
	sword.Level = 5
	got, err = Resolve(tables, row, 1, []model.Equipment{sword}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(35), got.ATK())
}

func TestResolve_SetEffect(t *testing.T) {
	tables := testutil.Tables()
	row := playerRow(t, tables)

	sword := testutil.Equipment(tables, testutil.EquipSword, 0, 1)
	armor := testutil.Equipment(tables, testutil.EquipArmor, 0, 2)

	one, err := Resolve(tables, row, 1, []model.Equipment{sword}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), one.DEF())

	both, err := Resolve(tables, row, 1, []model.Equipment{sword, armor}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(10), both.DEF(), "set of two grants +5 DEF")
	assert.Equal(t, int64(150), both.HP())
}

func TestResolve_CostumeOptionalStats(t *testing.T) {
	tables := testutil.Tables()
	row := playerRow(t, tables)
	costume := model.Costume{RowID: testutil.CostumeFull, SubType: model.SubTypeFullCostume, Equipped: true}

	low, err := Resolve(tables, row, 1, nil, []model.Costume{costume})
	require.NoError(t, err)
	high, err := Resolve(tables, row, 5, nil, []model.Costume{costume})
	require.NoError(t, err)

	assert.Equal(t, model.Stats{HP: 20, ATK: 3}, low.Optional)
	assert.Equal(t, low.Optional, high.Optional, "optional stats do not scale with level")
	assert.Equal(t, int64(120), low.HP())
	assert.Equal(t, int64(23), low.ATK())
}

func TestResolve_HPFloor(t *testing.T) {
	tables := testutil.Tables()
	row := data.CharacterRow{ID: 99, Base: model.Stats{HP: 5}}
	cursed := model.Equipment{
		SubType: model.SubTypeArmor,
		Stat:    model.StatModifier{Stat: model.StatHP, Value: -50},
	}

	got, err := Resolve(tables, row, 1, []model.Equipment{cursed}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.HP())
}

func TestResolve_NotEquippable(t *testing.T) {
	tables := testutil.Tables()
	row := playerRow(t, tables)

	_, err := Resolve(tables, row, 1, []model.Equipment{{SubType: model.SubTypeFullCostume}}, nil)
	assert.ErrorIs(t, err, model.ErrNotEquippable)
}

func TestResolve_Pure(t *testing.T) {
	tables := testutil.Tables()
	row := playerRow(t, tables)
	items := []model.Equipment{
		testutil.Equipment(tables, testutil.EquipSword, 2, 1),
		testutil.Equipment(tables, testutil.EquipArmor, 1, 2),
	}

	a, err := Resolve(tables, row, 4, items, nil)
	require.NoError(t, err)
	b, err := Resolve(tables, row, 4, items, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, int32(2), items[0].Level, "inputs untouched")
}

func TestForAvatarAndEnemy(t *testing.T) {
	tables := testutil.Tables()

	avatar := testutil.Avatar("0x01")
	sword := testutil.Equipment(tables, testutil.EquipSword, 0, 1)
	spare := testutil.Equipment(tables, testutil.EquipSword2, 0, 2)
	avatar.Inventory.AddEquipment(sword)
	avatar.Inventory.AddEquipment(spare)
	require.NoError(t, avatar.Inventory.Equip([]uuid.UUID{sword.ItemID}, nil))

	got, err := ForAvatar(tables, avatar)
	require.NoError(t, err)
	assert.Equal(t, int64(30), got.ATK(), "only equipped items count")

	enemy, err := ForEnemy(tables, data.EnemySpawn{CharacterID: testutil.CharBrute, Level: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(90), enemy.HP())

	_, err = ForEnemy(tables, data.EnemySpawn{CharacterID: 777})
	assert.ErrorIs(t, err, model.ErrUnknownRow)
}
