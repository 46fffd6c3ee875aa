package data

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/chronicle/internal/model"
)

func TestDefaultTables(t *testing.T) {
	tables, err := Default()
	require.NoError(t, err)

	assert.Equal(t, int32(30), tables.MaxLevel())
	assert.Equal(t, 5, tables.Characters.Len())
	assert.Equal(t, 3, tables.Stages.Len())

	player, ok := tables.Characters.Get(100010)
	require.True(t, ok)
	assert.Equal(t, int64(150), player.Base.CDMG)

	slime, _ := tables.Characters.Get(201000)
	assert.Equal(t, int64(DefaultCriticalDamage), slime.Base.CDMG, "omitted cdmg falls back to default")

	skill, ok := tables.Skills.Get(110000)
	require.True(t, ok)
	assert.Equal(t, CategoryDouble, skill.Category)

	cost, ok := tables.EnhancementCost(1, 4)
	require.True(t, ok)
	assert.Equal(t, int32(1), cost.DowngradeOnFailure)
	_, ok = tables.EnhancementCost(1, 10)
	assert.False(t, ok, "no row past the last level")

	sets := tables.SetEffectsFor(2)
	require.Len(t, sets, 1)
	assert.Len(t, sets[0].Modifiers, 2)

	assert.Len(t, tables.CostumeStatsFor(49900001), 2)
	assert.Empty(t, tables.CostumeStatsFor(1))
}

func TestDefault_Shared(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestExpForLevel(t *testing.T) {
	tables, err := Default()
	require.NoError(t, err)

	tests := []struct {
		level int32
		want  int64
	}{
		{0, 0},
		{1, 0},
		{2, 100},
		{3, 400},
		{5, 2000},
		{30, 449500},
		{31, 449500}, // обрезано до максимального уровня
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tables.ExpForLevel(tt.level), "level %d", tt.level)
	}
}

func TestLevelForExp(t *testing.T) {
	tables, err := Default()
	require.NoError(t, err)

	tests := []struct {
		exp        int64
		startLevel int32
		want       int32
	}{
		{0, 1, 1},
		{99, 1, 1},  // чуть ниже уровня 2
		{100, 1, 2}, // ровно уровень 2
		{399, 1, 2},
		{400, 1, 3},
		{2000, 3, 5},      // старт с середины кривой
		{449500, 1, 30},   // ровно максимум
		{99999999, 1, 30}, // упор в максимум
		{0, 0, 1},
	}
	for _, tt := range tests {
		got := tables.LevelForExp(tt.exp, tt.startLevel)
		assert.Equal(t, tt.want, got, "LevelForExp(%d, %d)", tt.exp, tt.startLevel)
	}
}

func TestLevelCurveMonotonic(t *testing.T) {
	tables, err := Default()
	require.NoError(t, err)

	levels := tables.Levels.Values()
	for i := 1; i < len(levels); i++ {
		prev, cur := levels[i-1], levels[i]
		assert.Equal(t, prev.Exp+prev.ExpNeed, cur.Exp, "level %d", cur.Level)
	}
}

func TestNewSheet_Duplicate(t *testing.T) {
	_, err := NewSheet([]BuffRow{{ID: 1}, {ID: 1}}, func(r BuffRow) int32 { return r.ID })
	assert.Error(t, err)

	s, err := NewSheet([]BuffRow{{ID: 3}, {ID: 1}, {ID: 2}}, func(r BuffRow) int32 { return r.ID })
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3}, s.Keys())
	assert.Equal(t, int32(1), s.Values()[0].ID)

	var empty *Sheet[int32, BuffRow]
	_, ok := empty.Get(1)
	assert.False(t, ok)
	assert.Zero(t, empty.Len())
}

func TestTables_NewEquipment(t *testing.T) {
	tables, err := Default()
	require.NoError(t, err)

	e, err := tables.NewEquipment(10110000, [16]byte{1}, 2)
	require.NoError(t, err)
	assert.Equal(t, model.SubTypeWeapon, e.SubType)
	assert.Equal(t, int32(2), e.Grade)
	assert.Equal(t, int32(2), e.Level)
	assert.Equal(t, []int32{110002, 210000}, e.SkillIDs)

	_, err = tables.NewEquipment(1, [16]byte{}, 0)
	assert.ErrorIs(t, err, model.ErrUnknownRow)

	c, err := tables.NewCostume(40100000, [16]byte{2})
	require.NoError(t, err)
	assert.True(t, c.SubType.IsCostume())

	_, err = tables.NewCostume(1, [16]byte{})
	assert.ErrorIs(t, err, model.ErrUnknownRow)

	_, err = tables.NewMaterial(42, 1)
	assert.ErrorIs(t, err, model.ErrUnknownRow)
}

func minimalFS() fstest.MapFS {
	return fstest.MapFS{
		fileCharacters:       {Data: []byte("- {id: 1, base: {hp: 10, atk: 1, spd: 100}}\n")},
		fileLevels:           {Data: []byte("- {level: 1, exp: 0, exp_need: 10}\n- {level: 2, exp: 10, exp_need: 20}\n")},
		fileEquipment:        {Data: []byte("[]\n")},
		fileSetEffects:       {Data: []byte("[]\n")},
		fileCostumes:         {Data: []byte("costumes: []\nstats: []\n")},
		fileMaterials:        {Data: []byte("- {id: 7, sub_type: MonsterPart, grade: 1}\n")},
		fileSkills:           {Data: []byte("- {id: 100000, category: Normal, power: 100}\n")},
		fileBuffs:            {Data: []byte("[]\n")},
		fileEnhancementCosts: {Data: []byte("[]\n")},
		fileStages:           {Data: []byte("- {id: 1, turn_limit: 10, waves: [{enemies: [{character_id: 1, level: 1}]}]}\n")},
		fileStarter:          {Data: []byte("character_id: 1\nmaterials: [{material_id: 7, count: 1}]\n")},
	}
}

func TestLoad(t *testing.T) {
	tables, err := Load(minimalFS())
	require.NoError(t, err)
	assert.Equal(t, int32(2), tables.MaxLevel())
	assert.Equal(t, []StarterMaterial{{MaterialID: 7, Count: 1}}, tables.Starter.Materials)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
	}{
		{"missing file", fileBuffs, ""},
		{"bad yaml", fileSkills, "- {id: 1, category: [\n"},
		{"unknown category", fileSkills, "- {id: 1, category: Fireball}\n"},
		{"duplicate skill", fileSkills, "- {id: 1, category: Normal}\n- {id: 1, category: Normal}\n"},
		{"buff skill without buff", fileSkills, "- {id: 1, category: Buff}\n"},
		{"gap in level curve", fileLevels, "- {level: 1}\n- {level: 3}\n"},
		{"unknown enemy", fileStages, "- {id: 1, turn_limit: 10, waves: [{enemies: [{character_id: 9}]}]}\n"},
		{"stage without waves", fileStages, "- {id: 1, turn_limit: 10}\n"},
		{"unknown drop material", fileStages, "- {id: 1, turn_limit: 10, waves: [{enemies: [{character_id: 1}]}], rewards: [{ratio_bps: 1, items: [{material_id: 8}]}]}\n"},
		{"success rate out of range", fileEnhancementCosts, "- {grade: 1, level: 0, success_rate_bps: 10001}\n"},
		{"costume with equipment type", fileCostumes, "costumes: [{id: 1, sub_type: Weapon}]\n"},
		{"unknown starter equipment", fileStarter, "character_id: 1\nequipment: [5]\n"},
		{"unknown starter character", fileStarter, "character_id: 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := minimalFS()
			if tt.data == "" {
				delete(fsys, tt.file)
			} else {
				fsys[tt.file] = &fstest.MapFile{Data: []byte(tt.data)}
			}
			_, err := Load(fsys)
			assert.Error(t, err)
		})
	}
}
