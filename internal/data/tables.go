// Package data holds the immutable content tables the simulation reads:
// characters, level curve, items, skills, buffs, enhancement costs and stages.
//
// Tables are loaded once and shared read-only between concurrent runs.
package data

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/udisondev/chronicle/internal/model"
)

// Tables aggregates every sheet the core needs.
type Tables struct {
	Characters       *Sheet[int32, CharacterRow]
	Levels           *Sheet[int32, CharacterLevelRow]
	Equipment        *Sheet[int32, EquipmentItemRow]
	SetEffects       []SetEffectRow // по (SetID, Count)
	Costumes         *Sheet[int32, CostumeItemRow]
	CostumeStats     *Sheet[int32, CostumeStatRow]
	Materials        *Sheet[int32, MaterialItemRow]
	Skills           *Sheet[int32, SkillRow]
	Buffs            *Sheet[int32, BuffRow]
	EnhancementCosts *Sheet[int64, EnhancementCostRow]
	Stages           *Sheet[int32, StageRow]
	Starter          StarterRow
}

// MaxLevel returns the highest level of the level curve (at least 1).
func (t *Tables) MaxLevel() int32 {
	keys := t.Levels.Keys()
	if len(keys) == 0 {
		return 1
	}
	return keys[len(keys)-1]
}

// ExpForLevel returns the cumulative exp at which level starts.
// Levels below 1 return 0; levels above the curve are clamped to MaxLevel.
func (t *Tables) ExpForLevel(level int32) int64 {
	if level <= 1 {
		return 0
	}
	if max := t.MaxLevel(); level > max {
		level = max
	}
	row, ok := t.Levels.Get(level)
	if !ok {
		return 0
	}
	return row.Exp
}

// LevelForExp returns the level for cumulative exp, scanning up from startLevel.
func (t *Tables) LevelForExp(exp int64, startLevel int32) int32 {
	if startLevel < 1 {
		startLevel = 1
	}
	max := t.MaxLevel()
	level := startLevel
	for level < max {
		next, ok := t.Levels.Get(level + 1)
		if !ok || next.Exp > exp {
			break
		}
		level++
	}
	return level
}

// SetEffectsFor returns the set effects of setID ordered by required count.
func (t *Tables) SetEffectsFor(setID int32) []SetEffectRow {
	var out []SetEffectRow
	for _, r := range t.SetEffects {
		if r.SetID == setID {
			out = append(out, r)
		}
	}
	return out
}

// CostumeStatsFor returns the optional stats granted by costume row costumeID.
func (t *Tables) CostumeStatsFor(costumeID int32) []CostumeStatRow {
	var out []CostumeStatRow
	for _, r := range t.CostumeStats.Values() {
		if r.CostumeID == costumeID {
			out = append(out, r)
		}
	}
	return out
}

// EnhancementCost returns the cost row for upgrading an item of grade at level.
func (t *Tables) EnhancementCost(grade, level int32) (EnhancementCostRow, bool) {
	return t.EnhancementCosts.Get(EnhancementKey(grade, level))
}

// Validate checks cross-sheet references.
func (t *Tables) Validate() error {
	if t.Characters.Len() == 0 {
		return fmt.Errorf("character sheet is empty")
	}
	if t.Levels.Len() == 0 {
		return fmt.Errorf("level sheet is empty")
	}
	for i, lvl := range t.Levels.Keys() {
		if lvl != int32(i+1) {
			return fmt.Errorf("level sheet must be contiguous from 1, got %d at position %d", lvl, i)
		}
	}

	skillExists := func(ids []int32, owner string) error {
		for _, id := range ids {
			if _, ok := t.Skills.Get(id); !ok {
				return fmt.Errorf("%s references unknown skill %d", owner, id)
			}
		}
		return nil
	}

	for _, s := range t.Skills.Values() {
		if s.BuffID != 0 {
			if _, ok := t.Buffs.Get(s.BuffID); !ok {
				return fmt.Errorf("skill %d references unknown buff %d", s.ID, s.BuffID)
			}
		}
	}
	for _, e := range t.Equipment.Values() {
		if !e.SubType.IsEquipment() {
			return fmt.Errorf("equipment %d has non-equipment sub type %s", e.ID, e.SubType)
		}
		if err := skillExists(e.SkillIDs, fmt.Sprintf("equipment %d", e.ID)); err != nil {
			return err
		}
	}
	for _, c := range t.CostumeStats.Values() {
		if _, ok := t.Costumes.Get(c.CostumeID); !ok {
			return fmt.Errorf("costume stat %d references unknown costume %d", c.ID, c.CostumeID)
		}
	}
	if _, ok := t.Characters.Get(t.Starter.CharacterID); !ok {
		return fmt.Errorf("starter kit references unknown character %d", t.Starter.CharacterID)
	}
	for _, id := range t.Starter.Equipment {
		if _, ok := t.Equipment.Get(id); !ok {
			return fmt.Errorf("starter kit references unknown equipment %d", id)
		}
	}
	for _, id := range t.Starter.Costumes {
		if _, ok := t.Costumes.Get(id); !ok {
			return fmt.Errorf("starter kit references unknown costume %d", id)
		}
	}
	for _, m := range t.Starter.Materials {
		if _, ok := t.Materials.Get(m.MaterialID); !ok {
			return fmt.Errorf("starter kit references unknown material %d", m.MaterialID)
		}
	}
	for _, st := range t.Stages.Values() {
		if len(st.Waves) == 0 {
			return fmt.Errorf("stage %d has no waves", st.ID)
		}
		for wi, w := range st.Waves {
			for _, e := range w.Enemies {
				if _, ok := t.Characters.Get(e.CharacterID); !ok {
					return fmt.Errorf("stage %d wave %d references unknown character %d", st.ID, wi+1, e.CharacterID)
				}
				if err := skillExists(e.SkillIDs, fmt.Sprintf("stage %d wave %d", st.ID, wi+1)); err != nil {
					return err
				}
			}
			if err := t.validateDrops(w.Drops); err != nil {
				return fmt.Errorf("stage %d wave %d: %w", st.ID, wi+1, err)
			}
		}
		if err := t.validateDrops(st.Rewards); err != nil {
			return fmt.Errorf("stage %d rewards: %w", st.ID, err)
		}
	}
	return nil
}

func (t *Tables) validateDrops(groups []DropGroup) error {
	for _, g := range groups {
		for _, it := range g.Items {
			if _, ok := t.Materials.Get(it.MaterialID); !ok {
				return fmt.Errorf("unknown material %d", it.MaterialID)
			}
			if it.Min < 0 || it.Max < it.Min {
				return fmt.Errorf("material %d has invalid count range [%d, %d]", it.MaterialID, it.Min, it.Max)
			}
		}
	}
	return nil
}

// NewEquipment instantiates an equipment row as an inventory item.
func (t *Tables) NewEquipment(rowID int32, itemID uuid.UUID, level int32) (model.Equipment, error) {
	row, ok := t.Equipment.Get(rowID)
	if !ok {
		return model.Equipment{}, fmt.Errorf("%w: equipment %d", model.ErrUnknownRow, rowID)
	}
	return model.Equipment{
		ItemID:   itemID,
		RowID:    row.ID,
		SubType:  row.SubType,
		Grade:    row.Grade,
		Level:    level,
		Stat:     row.Stat,
		SetID:    row.SetID,
		SkillIDs: slices.Clone(row.SkillIDs),
	}, nil
}

// NewCostume instantiates a costume row as an inventory item.
func (t *Tables) NewCostume(rowID int32, itemID uuid.UUID) (model.Costume, error) {
	row, ok := t.Costumes.Get(rowID)
	if !ok {
		return model.Costume{}, fmt.Errorf("%w: costume %d", model.ErrUnknownRow, rowID)
	}
	return model.Costume{ItemID: itemID, RowID: row.ID, SubType: row.SubType}, nil
}

// NewMaterial instantiates count units of a material row.
func (t *Tables) NewMaterial(rowID int32, count int) (model.Material, error) {
	row, ok := t.Materials.Get(rowID)
	if !ok {
		return model.Material{}, fmt.Errorf("%w: material %d", model.ErrUnknownRow, rowID)
	}
	return model.Material{RowID: row.ID, SubType: row.SubType, Grade: row.Grade, Count: count}, nil
}
