package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEquipment(subType ItemSubType, level int32) Equipment {
	return Equipment{
		ItemID:   uuid.New(),
		RowID:    10100000,
		SubType:  subType,
		Grade:    1,
		Level:    level,
		Stat:     StatModifier{Stat: StatATK, Value: 20},
		SkillIDs: []int32{100001},
	}
}

func TestInventory_CloneIsDeep(t *testing.T) {
	var inv Inventory
	inv.AddEquipment(newTestEquipment(SubTypeWeapon, 0))
	inv.AddMaterial(Material{RowID: 303000, Count: 3})

	cp := inv.Clone()
	cp.Equipment[0].Level = 5
	cp.Equipment[0].SkillIDs[0] = 999
	cp.Materials[0].Count = 1

	assert.Equal(t, int32(0), inv.Equipment[0].Level)
	assert.Equal(t, int32(100001), inv.Equipment[0].SkillIDs[0])
	assert.Equal(t, 3, inv.Materials[0].Count)
}

func TestInventory_Materials(t *testing.T) {
	var inv Inventory
	inv.AddMaterial(Material{RowID: 300, Count: 2})
	inv.AddMaterial(Material{RowID: 100, Count: 1})
	inv.AddMaterial(Material{RowID: 300, Count: 5})
	inv.AddMaterial(Material{RowID: 200, Count: 0})

	require.Len(t, inv.Materials, 2)
	assert.Equal(t, int32(100), inv.Materials[0].RowID, "stacks sorted by row id")
	assert.Equal(t, 7, inv.MaterialCount(300))

	require.NoError(t, inv.RemoveMaterial(300, 7))
	assert.Equal(t, 0, inv.MaterialCount(300))
	assert.Len(t, inv.Materials, 1)

	err := inv.RemoveMaterial(100, 2)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.ErrorIs(t, err, ErrConstraint)
	assert.ErrorIs(t, inv.RemoveMaterial(555, 1), ErrItemNotFound)
}

func TestInventory_Equipment(t *testing.T) {
	var inv Inventory
	w := newTestEquipment(SubTypeWeapon, 0)
	inv.AddEquipment(w)

	got, ok := inv.FindEquipment(w.ItemID)
	require.True(t, ok)
	got.Level = 3
	require.NoError(t, inv.ReplaceEquipment(got))

	again, _ := inv.FindEquipment(w.ItemID)
	assert.Equal(t, int32(3), again.Level)

	require.NoError(t, inv.RemoveEquipment(w.ItemID))
	_, ok = inv.FindEquipment(w.ItemID)
	assert.False(t, ok)
	assert.ErrorIs(t, inv.RemoveEquipment(w.ItemID), ErrItemNotFound)
	assert.ErrorIs(t, inv.ReplaceEquipment(w), ErrItemNotFound)
}

func TestInventory_Equip(t *testing.T) {
	weapon := newTestEquipment(SubTypeWeapon, 0)
	weapon2 := newTestEquipment(SubTypeWeapon, 0)
	ring1 := newTestEquipment(SubTypeRing, 0)
	ring2 := newTestEquipment(SubTypeRing, 0)
	costume := Costume{ItemID: uuid.New(), RowID: 40100000, SubType: SubTypeFullCostume}

	tests := []struct {
		name      string
		equipment []uuid.UUID
		costumes  []uuid.UUID
		wantErr   error
	}{
		{"weapon and two rings", []uuid.UUID{weapon.ItemID, ring1.ItemID, ring2.ItemID}, []uuid.UUID{costume.ItemID}, nil},
		{"two weapons", []uuid.UUID{weapon.ItemID, weapon2.ItemID}, nil, ErrNotEquippable},
		{"duplicate id", []uuid.UUID{weapon.ItemID, weapon.ItemID}, nil, ErrNotEquippable},
		{"unknown id", []uuid.UUID{uuid.New()}, nil, ErrItemNotFound},
		{"unknown costume", nil, []uuid.UUID{uuid.New()}, ErrItemNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var inv Inventory
			for _, e := range []Equipment{weapon, weapon2, ring1, ring2} {
				inv.AddEquipment(e)
			}
			inv.AddCostume(costume)
			before := inv.Clone()

			err := inv.Equip(tt.equipment, tt.costumes)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, inv, "failed equip must not change inventory")
				return
			}
			require.NoError(t, err)
			assert.Len(t, inv.EquippedEquipment(), len(tt.equipment))
			assert.Len(t, inv.EquippedCostumes(), len(tt.costumes))
		})
	}
}

func TestEquipment_StatValueFromFixture(t *testing.T) {
	e := newTestEquipment(SubTypeWeapon, 0)
	assert.Equal(t, int64(20), e.StatValue())
	e.Level = 3
	assert.Equal(t, int64(26), e.StatValue())
	assert.Equal(t, StatModifier{Stat: StatATK, Value: 26}, e.Modifier())
}

func TestMaterialFungibleID_IgnoresCount(t *testing.T) {
	a := Material{RowID: 303000}
	b := Material{RowID: 303000, Count: 9}
	assert.Equal(t, a.FungibleID(), b.FungibleID())
	assert.NotEqual(t, a.FungibleID(), MaterialFungibleID(303001))
	assert.Len(t, a.FungibleID(), 64)
}

func TestStats(t *testing.T) {
	s := Stats{ATK: 100, HP: 50}
	s = StatModifier{Stat: StatATK, Op: OpPercent, Value: 15}.Apply(s)
	assert.Equal(t, int64(115), s.ATK)
	s = StatModifier{Stat: StatHP, Value: -10}.Apply(s)
	assert.Equal(t, int64(40), s.HP)

	r := ResolvedStats{Base: Stats{ATK: 10}, Optional: Stats{ATK: 5}}
	assert.Equal(t, int64(15), r.ATK())
	assert.Equal(t, int64(15), r.Total().ATK)

	st, err := ParseStatType("atk")
	require.NoError(t, err)
	assert.Equal(t, StatATK, st)
	_, err = ParseStatType("mana")
	assert.ErrorIs(t, err, ErrValidation)
}
