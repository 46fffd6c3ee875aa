package data

import (
	"fmt"
	"strings"

	"github.com/udisondev/chronicle/internal/model"
)

// CharacterRow holds level-1 base stats of a character or monster and per-level growth.
type CharacterRow struct {
	ID     int32
	Base   model.Stats
	Growth model.Stats // прибавляется за каждый уровень выше 1
}

// CharacterLevelRow is one step of the level curve.
// Exp is the cumulative exp at which Level starts; ExpNeed is the exp
// required to reach Level+1.
type CharacterLevelRow struct {
	Level   int32
	Exp     int64
	ExpNeed int64
}

// EquipmentItemRow describes an equipment template.
type EquipmentItemRow struct {
	ID       int32
	SubType  model.ItemSubType
	Grade    int32
	Stat     model.StatModifier
	SetID    int32
	SkillIDs []int32
}

// SetEffectRow grants Modifiers when Count items of SetID are equipped.
type SetEffectRow struct {
	SetID     int32
	Count     int
	Modifiers []model.StatModifier
}

// CostumeItemRow describes a costume template.
type CostumeItemRow struct {
	ID      int32
	SubType model.ItemSubType
}

// CostumeStatRow is one optional stat granted by an equipped costume.
type CostumeStatRow struct {
	ID        int32
	CostumeID int32
	Stat      model.StatType
	Value     int64
}

// MaterialItemRow describes a fungible material.
type MaterialItemRow struct {
	ID      int32
	SubType model.ItemSubType
	Grade   int32
}

// SkillCategory is the closed set of skill behaviours.
type SkillCategory int8

const (
	CategoryNormal SkillCategory = iota
	CategoryBlow
	CategoryDouble
	CategoryArea
	CategoryHeal
	CategoryBuff
	CategoryDebuff
)

var categoryNames = [...]string{
	CategoryNormal: "Normal",
	CategoryBlow:   "Blow",
	CategoryDouble: "Double",
	CategoryArea:   "Area",
	CategoryHeal:   "Heal",
	CategoryBuff:   "Buff",
	CategoryDebuff: "Debuff",
}

func (c SkillCategory) String() string {
	if int(c) < 0 || int(c) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

// ParseSkillCategory parses a category name from the skill table.
func ParseSkillCategory(s string) (SkillCategory, error) {
	for i, name := range categoryNames {
		if strings.EqualFold(name, s) {
			return SkillCategory(i), nil
		}
	}
	return CategoryNormal, fmt.Errorf("%w: skill category %q", model.ErrValidation, s)
}

// IsOffensive reports whether the category damages enemies.
func (c SkillCategory) IsOffensive() bool {
	switch c {
	case CategoryNormal, CategoryBlow, CategoryDouble, CategoryArea:
		return true
	default:
		return false
	}
}

// SkillTargetType overrides the category's default targets.
type SkillTargetType int8

const (
	TargetDefault SkillTargetType = iota
	TargetEnemy
	TargetEnemies
	TargetSelf
	TargetAlly
	TargetAllies
)

var targetNames = [...]string{
	TargetDefault: "",
	TargetEnemy:   "Enemy",
	TargetEnemies: "Enemies",
	TargetSelf:    "Self",
	TargetAlly:    "Ally",
	TargetAllies:  "Allies",
}

func (t SkillTargetType) String() string {
	if int(t) < 0 || int(t) >= len(targetNames) {
		return "Unknown"
	}
	if t == TargetDefault {
		return "Default"
	}
	return targetNames[t]
}

// ParseSkillTargetType parses a target type; empty means the category default.
func ParseSkillTargetType(s string) (SkillTargetType, error) {
	for i, name := range targetNames {
		if strings.EqualFold(name, s) {
			return SkillTargetType(i), nil
		}
	}
	return TargetDefault, fmt.Errorf("%w: skill target %q", model.ErrValidation, s)
}

// SkillRow is an immutable skill definition.
type SkillRow struct {
	ID       int32
	Category SkillCategory
	Target   SkillTargetType
	Power    int64 // процент от ATK
	HitCount int   // 0 = по умолчанию для категории
	Cooldown int   // ходы владельца
	HPCost   int64 // платит кастер, может умереть
	Chance   int   // шанс выбора AI, %
	BuffID   int32
}

// BuffRow is a timed percent stat modifier.
type BuffRow struct {
	ID       int32
	Stat     model.StatType
	Percent  int64
	Duration int // ходы владельца
}

// EnhancementCostRow prices one enhancement step of a grade.
// DowngradeOnFailure is the number of levels lost on a failed attempt;
// 0 keeps the level.
type EnhancementCostRow struct {
	Grade              int32
	Level              int32
	Cost               int64
	SuccessRateBps     int
	DowngradeOnFailure int32
}

// EnhancementKey builds the EnhancementCostSheet key.
func EnhancementKey(grade, level int32) int64 {
	return int64(grade)<<32 | int64(uint32(level))
}

// DropItem is one material that may drop from a DropGroup.
type DropItem struct {
	MaterialID int32
	RatioBps   int
	Min        int
	Max        int
}

// DropGroup is rolled first; its items are rolled only if the group passes.
type DropGroup struct {
	RatioBps int
	Items    []DropItem
}

// EnemySpawn is one enemy of a wave.
type EnemySpawn struct {
	CharacterID int32
	Level       int32
	SkillIDs    []int32
}

// WaveRow is one wave of a stage.
type WaveRow struct {
	TurnLimit int // 0 = лимит stage
	Enemies   []EnemySpawn
	Drops     []DropGroup
}

// StageRow describes an encounter.
type StageRow struct {
	ID        int32
	TurnLimit int
	Exp       int64
	Waves     []WaveRow
	Rewards   []DropGroup
}

// StarterMaterial is a stack granted to a new avatar.
type StarterMaterial struct {
	MaterialID int32
	Count      int
}

// StarterRow lists the items every new avatar receives.
type StarterRow struct {
	CharacterID int32
	Equipment   []int32 // id строк экипировки, по предмету на каждую
	Costumes    []int32
	Materials   []StarterMaterial
}
