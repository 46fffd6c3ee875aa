// Package stats resolves the combat attributes of a character from its
// table row, level and equipped items.
//
// Resolution is a pure function of its inputs. The order is fixed:
//
//  1. base stats of the character row (level 1)
//  2. per-level growth up to the level (clamped to [1, max level])
//  3. additive equipment modifiers
//  4. percent equipment modifiers
//  5. set effects
//  6. costume optional stats (kept apart, never scaled)
//
// HP never resolves below 1.
package stats

import (
	"fmt"

	"github.com/udisondev/chronicle/internal/data"
	"github.com/udisondev/chronicle/internal/model"
)

// Resolve aggregates the stats of a character wearing equipment and costumes.
// Items are read in slice order; callers pass the equipped subset.
func Resolve(t *data.Tables, row data.CharacterRow, level int32, equipment []model.Equipment, costumes []model.Costume) (model.ResolvedStats, error) {
	level = max(1, min(level, t.MaxLevel()))

	base := row.Base
	growth := int64(level - 1)
	base = base.Plus(model.Stats{
		HP:   row.Growth.HP * growth,
		ATK:  row.Growth.ATK * growth,
		DEF:  row.Growth.DEF * growth,
		CRI:  row.Growth.CRI * growth,
		CDMG: row.Growth.CDMG * growth,
		HIT:  row.Growth.HIT * growth,
		SPD:  row.Growth.SPD * growth,
	})

	for _, e := range equipment {
		if !e.SubType.IsEquipment() {
			return model.ResolvedStats{}, fmt.Errorf("%w: %s item %s", model.ErrNotEquippable, e.SubType, e.ItemID)
		}
	}

	// Процентные модификаторы считаются от суммы с плоскими бонусами: два прохода.
	for _, e := range equipment {
		if m := e.Modifier(); m.Op == model.OpAdd {
			base = m.Apply(base)
		}
	}
	for _, e := range equipment {
		if m := e.Modifier(); m.Op == model.OpPercent {
			base = m.Apply(base)
		}
	}

	for _, m := range setModifiers(t, equipment) {
		base = m.Apply(base)
	}

	var optional model.Stats
	for _, c := range costumes {
		for _, cs := range t.CostumeStatsFor(c.RowID) {
			optional = optional.Add(cs.Stat, cs.Value)
		}
	}

	out := model.ResolvedStats{Base: base, Optional: optional}
	if out.HP() < 1 {
		out.Base.HP = 1 - out.Optional.HP
	}
	return out, nil
}

// setModifiers возвращает модификаторы всех сетовых эффектов, чьё требуемое
// количество набрано, по порядку set id, затем count.
func setModifiers(t *data.Tables, equipment []model.Equipment) []model.StatModifier {
	counts := make(map[int32]int)
	for _, e := range equipment {
		if e.SetID != 0 {
			counts[e.SetID]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	var out []model.StatModifier
	// t.SetEffects отсортирован, порядок не зависит от map.
	for _, eff := range t.SetEffects {
		if counts[eff.SetID] >= eff.Count {
			out = append(out, eff.Modifiers...)
		}
	}
	return out
}

// ForEnemy resolves a spawned enemy. Enemies wear nothing.
func ForEnemy(t *data.Tables, spawn data.EnemySpawn) (model.ResolvedStats, error) {
	row, ok := t.Characters.Get(spawn.CharacterID)
	if !ok {
		return model.ResolvedStats{}, fmt.Errorf("%w: character %d", model.ErrUnknownRow, spawn.CharacterID)
	}
	return Resolve(t, row, spawn.Level, nil, nil)
}

// ForAvatar resolves an avatar from its equipped inventory.
func ForAvatar(t *data.Tables, a model.Avatar) (model.ResolvedStats, error) {
	row, ok := t.Characters.Get(a.CharacterID)
	if !ok {
		return model.ResolvedStats{}, fmt.Errorf("%w: character %d", model.ErrUnknownRow, a.CharacterID)
	}
	return Resolve(t, row, a.Level, a.Inventory.EquippedEquipment(), a.Inventory.EquippedCostumes())
}
