package data

import (
	"cmp"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/chronicle/internal/model"
)

//go:embed tables/*.yaml
var embedded embed.FS

// Sheet file names inside a tables directory.
const (
	fileCharacters       = "characters.yaml"
	fileLevels           = "levels.yaml"
	fileEquipment        = "equipment.yaml"
	fileSetEffects       = "set_effects.yaml"
	fileCostumes         = "costumes.yaml"
	fileMaterials        = "materials.yaml"
	fileSkills           = "skills.yaml"
	fileBuffs            = "buffs.yaml"
	fileEnhancementCosts = "enhancement_costs.yaml"
	fileStages           = "stages.yaml"
	fileStarter          = "starter.yaml"
)

var (
	defaultOnce   sync.Once
	defaultTables *Tables
	defaultErr    error
)

// Default returns the tables embedded into the binary.
// Loaded once; the result is shared and must not be modified.
func Default() (*Tables, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embedded, "tables")
		if err != nil {
			defaultErr = err
			return
		}
		defaultTables, defaultErr = Load(sub)
	})
	return defaultTables, defaultErr
}

// LoadDir loads tables from a directory; an empty dir means the embedded tables.
func LoadDir(dir string) (*Tables, error) {
	if dir == "" {
		return Default()
	}
	return Load(os.DirFS(dir))
}

// Load reads every sheet from fsys and validates cross references.
func Load(fsys fs.FS) (*Tables, error) {
	var (
		t   Tables
		err error
	)

	var chars []rawCharacter
	if err := readYAML(fsys, fileCharacters, &chars); err != nil {
		return nil, err
	}
	if t.Characters, err = buildSheet(fileCharacters, chars, rawCharacter.row, func(r CharacterRow) int32 { return r.ID }); err != nil {
		return nil, err
	}

	var levels []CharacterLevelRow
	var rawLevels []rawLevel
	if err := readYAML(fsys, fileLevels, &rawLevels); err != nil {
		return nil, err
	}
	for _, r := range rawLevels {
		levels = append(levels, CharacterLevelRow(r))
	}
	if t.Levels, err = NewSheet(levels, func(r CharacterLevelRow) int32 { return r.Level }); err != nil {
		return nil, fmt.Errorf("%s: %w", fileLevels, err)
	}

	var equipment []rawEquipment
	if err := readYAML(fsys, fileEquipment, &equipment); err != nil {
		return nil, err
	}
	if t.Equipment, err = buildSheet(fileEquipment, equipment, rawEquipment.row, func(r EquipmentItemRow) int32 { return r.ID }); err != nil {
		return nil, err
	}

	var sets []rawSetEffect
	if err := readYAML(fsys, fileSetEffects, &sets); err != nil {
		return nil, err
	}
	for _, raw := range sets {
		row, err := raw.row()
		if err != nil {
			return nil, fmt.Errorf("%s: set %d: %w", fileSetEffects, raw.SetID, err)
		}
		t.SetEffects = append(t.SetEffects, row)
	}
	slices.SortStableFunc(t.SetEffects, func(a, b SetEffectRow) int {
		if c := cmp.Compare(a.SetID, b.SetID); c != 0 {
			return c
		}
		return cmp.Compare(a.Count, b.Count)
	})

	var costumes rawCostumeFile
	if err := readYAML(fsys, fileCostumes, &costumes); err != nil {
		return nil, err
	}
	if t.Costumes, err = buildSheet(fileCostumes, costumes.Costumes, rawCostume.row, func(r CostumeItemRow) int32 { return r.ID }); err != nil {
		return nil, err
	}
	if t.CostumeStats, err = buildSheet(fileCostumes, costumes.Stats, rawCostumeStat.row, func(r CostumeStatRow) int32 { return r.ID }); err != nil {
		return nil, err
	}

	var materials []rawMaterial
	if err := readYAML(fsys, fileMaterials, &materials); err != nil {
		return nil, err
	}
	if t.Materials, err = buildSheet(fileMaterials, materials, rawMaterial.row, func(r MaterialItemRow) int32 { return r.ID }); err != nil {
		return nil, err
	}

	var skills []rawSkill
	if err := readYAML(fsys, fileSkills, &skills); err != nil {
		return nil, err
	}
	if t.Skills, err = buildSheet(fileSkills, skills, rawSkill.row, func(r SkillRow) int32 { return r.ID }); err != nil {
		return nil, err
	}

	var buffs []rawBuff
	if err := readYAML(fsys, fileBuffs, &buffs); err != nil {
		return nil, err
	}
	if t.Buffs, err = buildSheet(fileBuffs, buffs, rawBuff.row, func(r BuffRow) int32 { return r.ID }); err != nil {
		return nil, err
	}

	var costs []rawEnhancementCost
	if err := readYAML(fsys, fileEnhancementCosts, &costs); err != nil {
		return nil, err
	}
	if t.EnhancementCosts, err = buildSheet(fileEnhancementCosts, costs, rawEnhancementCost.row,
		func(r EnhancementCostRow) int64 { return EnhancementKey(r.Grade, r.Level) }); err != nil {
		return nil, err
	}

	var stages []rawStage
	if err := readYAML(fsys, fileStages, &stages); err != nil {
		return nil, err
	}
	if t.Stages, err = buildSheet(fileStages, stages, rawStage.row, func(r StageRow) int32 { return r.ID }); err != nil {
		return nil, err
	}

	var starter rawStarter
	if err := readYAML(fsys, fileStarter, &starter); err != nil {
		return nil, err
	}
	t.Starter = starter.row()

	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("validating tables: %w", err)
	}

	slog.Debug("loaded content tables",
		"characters", t.Characters.Len(),
		"levels", t.Levels.Len(),
		"equipment", t.Equipment.Len(),
		"skills", t.Skills.Len(),
		"stages", t.Stages.Len())
	return &t, nil
}

func readYAML(fsys fs.FS, name string, out any) error {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

func buildSheet[K int32 | int64, Raw any, R any](file string, raws []Raw, conv func(Raw) (R, error), key func(R) K) (*Sheet[K, R], error) {
	rows := make([]R, 0, len(raws))
	for i, raw := range raws {
		r, err := conv(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", file, i, err)
		}
		rows = append(rows, r)
	}
	s, err := NewSheet(rows, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return s, nil
}

// YAML shapes. Enums are written by name.

type rawStats struct {
	HP   int64 `yaml:"hp"`
	ATK  int64 `yaml:"atk"`
	DEF  int64 `yaml:"def"`
	CRI  int64 `yaml:"cri"`
	CDMG int64 `yaml:"cdmg"`
	HIT  int64 `yaml:"hit"`
	SPD  int64 `yaml:"spd"`
}

func (s rawStats) stats() model.Stats {
	return model.Stats{HP: s.HP, ATK: s.ATK, DEF: s.DEF, CRI: s.CRI, CDMG: s.CDMG, HIT: s.HIT, SPD: s.SPD}
}

type rawModifier struct {
	Stat  string `yaml:"stat"`
	Op    string `yaml:"op"`
	Value int64  `yaml:"value"`
}

func (m rawModifier) modifier() (model.StatModifier, error) {
	st, err := model.ParseStatType(m.Stat)
	if err != nil {
		return model.StatModifier{}, err
	}
	op, err := model.ParseModifierOp(m.Op)
	if err != nil {
		return model.StatModifier{}, err
	}
	return model.StatModifier{Stat: st, Op: op, Value: m.Value}, nil
}

// DefaultCriticalDamage is used when a character row omits cdmg.
const DefaultCriticalDamage = 150

type rawCharacter struct {
	ID     int32    `yaml:"id"`
	Base   rawStats `yaml:"base"`
	Growth rawStats `yaml:"growth"`
}

func (r rawCharacter) row() (CharacterRow, error) {
	base := r.Base.stats()
	if base.CDMG == 0 {
		base.CDMG = DefaultCriticalDamage
	}
	if base.HP <= 0 {
		return CharacterRow{}, fmt.Errorf("character %d: hp must be positive", r.ID)
	}
	return CharacterRow{ID: r.ID, Base: base, Growth: r.Growth.stats()}, nil
}

type rawLevel struct {
	Level   int32 `yaml:"level"`
	Exp     int64 `yaml:"exp"`
	ExpNeed int64 `yaml:"exp_need"`
}

type rawEquipment struct {
	ID       int32       `yaml:"id"`
	SubType  string      `yaml:"sub_type"`
	Grade    int32       `yaml:"grade"`
	Stat     rawModifier `yaml:"stat"`
	SetID    int32       `yaml:"set_id"`
	SkillIDs []int32     `yaml:"skills"`
}

func (r rawEquipment) row() (EquipmentItemRow, error) {
	st, err := model.ParseItemSubType(r.SubType)
	if err != nil {
		return EquipmentItemRow{}, err
	}
	mod, err := r.Stat.modifier()
	if err != nil {
		return EquipmentItemRow{}, err
	}
	return EquipmentItemRow{ID: r.ID, SubType: st, Grade: r.Grade, Stat: mod, SetID: r.SetID, SkillIDs: r.SkillIDs}, nil
}

type rawSetEffect struct {
	SetID     int32         `yaml:"set_id"`
	Count     int           `yaml:"count"`
	Modifiers []rawModifier `yaml:"modifiers"`
}

func (r rawSetEffect) row() (SetEffectRow, error) {
	out := SetEffectRow{SetID: r.SetID, Count: r.Count}
	for _, m := range r.Modifiers {
		mod, err := m.modifier()
		if err != nil {
			return SetEffectRow{}, err
		}
		out.Modifiers = append(out.Modifiers, mod)
	}
	return out, nil
}

type rawCostumeFile struct {
	Costumes []rawCostume     `yaml:"costumes"`
	Stats    []rawCostumeStat `yaml:"stats"`
}

type rawCostume struct {
	ID      int32  `yaml:"id"`
	SubType string `yaml:"sub_type"`
}

func (r rawCostume) row() (CostumeItemRow, error) {
	st, err := model.ParseItemSubType(r.SubType)
	if err != nil {
		return CostumeItemRow{}, err
	}
	if !st.IsCostume() {
		return CostumeItemRow{}, fmt.Errorf("costume %d: sub type %s is not a costume", r.ID, st)
	}
	return CostumeItemRow{ID: r.ID, SubType: st}, nil
}

type rawCostumeStat struct {
	ID        int32  `yaml:"id"`
	CostumeID int32  `yaml:"costume_id"`
	Stat      string `yaml:"stat"`
	Value     int64  `yaml:"value"`
}

func (r rawCostumeStat) row() (CostumeStatRow, error) {
	st, err := model.ParseStatType(r.Stat)
	if err != nil {
		return CostumeStatRow{}, err
	}
	return CostumeStatRow{ID: r.ID, CostumeID: r.CostumeID, Stat: st, Value: r.Value}, nil
}

type rawMaterial struct {
	ID      int32  `yaml:"id"`
	SubType string `yaml:"sub_type"`
	Grade   int32  `yaml:"grade"`
}

func (r rawMaterial) row() (MaterialItemRow, error) {
	st, err := model.ParseItemSubType(r.SubType)
	if err != nil {
		return MaterialItemRow{}, err
	}
	return MaterialItemRow{ID: r.ID, SubType: st, Grade: r.Grade}, nil
}

type rawSkill struct {
	ID       int32  `yaml:"id"`
	Category string `yaml:"category"`
	Target   string `yaml:"target"`
	Power    int64  `yaml:"power"`
	HitCount int    `yaml:"hit_count"`
	Cooldown int    `yaml:"cooldown"`
	HPCost   int64  `yaml:"hp_cost"`
	Chance   int    `yaml:"chance"`
	BuffID   int32  `yaml:"buff_id"`
}

func (r rawSkill) row() (SkillRow, error) {
	cat, err := ParseSkillCategory(r.Category)
	if err != nil {
		return SkillRow{}, err
	}
	target, err := ParseSkillTargetType(r.Target)
	if err != nil {
		return SkillRow{}, err
	}
	if r.HitCount < 0 || r.Cooldown < 0 || r.HPCost < 0 {
		return SkillRow{}, fmt.Errorf("skill %d: negative hit count, cooldown or hp cost", r.ID)
	}
	if (cat == CategoryBuff || cat == CategoryDebuff) && r.BuffID == 0 {
		return SkillRow{}, fmt.Errorf("skill %d: %s skill without buff", r.ID, cat)
	}
	return SkillRow{
		ID:       r.ID,
		Category: cat,
		Target:   target,
		Power:    r.Power,
		HitCount: r.HitCount,
		Cooldown: r.Cooldown,
		HPCost:   r.HPCost,
		Chance:   r.Chance,
		BuffID:   r.BuffID,
	}, nil
}

type rawBuff struct {
	ID       int32  `yaml:"id"`
	Stat     string `yaml:"stat"`
	Percent  int64  `yaml:"percent"`
	Duration int    `yaml:"duration"`
}

func (r rawBuff) row() (BuffRow, error) {
	st, err := model.ParseStatType(r.Stat)
	if err != nil {
		return BuffRow{}, err
	}
	if r.Duration <= 0 {
		return BuffRow{}, fmt.Errorf("buff %d: duration must be positive", r.ID)
	}
	return BuffRow{ID: r.ID, Stat: st, Percent: r.Percent, Duration: r.Duration}, nil
}

type rawEnhancementCost struct {
	Grade              int32 `yaml:"grade"`
	Level              int32 `yaml:"level"`
	Cost               int64 `yaml:"cost"`
	SuccessRateBps     int   `yaml:"success_rate_bps"`
	DowngradeOnFailure int32 `yaml:"downgrade_on_failure"`
}

func (r rawEnhancementCost) row() (EnhancementCostRow, error) {
	if r.SuccessRateBps < 0 || r.SuccessRateBps > 10000 {
		return EnhancementCostRow{}, fmt.Errorf("grade %d level %d: success rate %d outside [0, 10000]", r.Grade, r.Level, r.SuccessRateBps)
	}
	if r.Cost < 0 || r.DowngradeOnFailure < 0 {
		return EnhancementCostRow{}, fmt.Errorf("grade %d level %d: negative cost or downgrade", r.Grade, r.Level)
	}
	return EnhancementCostRow(r), nil
}

type rawDropItem struct {
	MaterialID int32 `yaml:"material_id"`
	RatioBps   int   `yaml:"ratio_bps"`
	Min        int   `yaml:"min"`
	Max        int   `yaml:"max"`
}

type rawDropGroup struct {
	RatioBps int           `yaml:"ratio_bps"`
	Items    []rawDropItem `yaml:"items"`
}

func dropGroups(raws []rawDropGroup) []DropGroup {
	out := make([]DropGroup, 0, len(raws))
	for _, g := range raws {
		group := DropGroup{RatioBps: g.RatioBps}
		for _, it := range g.Items {
			group.Items = append(group.Items, DropItem(it))
		}
		out = append(out, group)
	}
	return out
}

type rawEnemy struct {
	CharacterID int32   `yaml:"character_id"`
	Level       int32   `yaml:"level"`
	SkillIDs    []int32 `yaml:"skills"`
}

type rawWave struct {
	TurnLimit int            `yaml:"turn_limit"`
	Enemies   []rawEnemy     `yaml:"enemies"`
	Drops     []rawDropGroup `yaml:"drops"`
}

type rawStage struct {
	ID        int32          `yaml:"id"`
	TurnLimit int            `yaml:"turn_limit"`
	Exp       int64          `yaml:"exp"`
	Waves     []rawWave      `yaml:"waves"`
	Rewards   []rawDropGroup `yaml:"rewards"`
}

func (r rawStage) row() (StageRow, error) {
	if r.TurnLimit <= 0 {
		return StageRow{}, fmt.Errorf("stage %d: turn limit must be positive", r.ID)
	}
	out := StageRow{ID: r.ID, TurnLimit: r.TurnLimit, Exp: r.Exp, Rewards: dropGroups(r.Rewards)}
	for _, w := range r.Waves {
		wave := WaveRow{TurnLimit: w.TurnLimit, Drops: dropGroups(w.Drops)}
		for _, e := range w.Enemies {
			wave.Enemies = append(wave.Enemies, EnemySpawn(e))
		}
		out.Waves = append(out.Waves, wave)
	}
	return out, nil
}

type rawStarterMaterial struct {
	MaterialID int32 `yaml:"material_id"`
	Count      int   `yaml:"count"`
}

type rawStarter struct {
	CharacterID int32                `yaml:"character_id"`
	Equipment   []int32              `yaml:"equipment"`
	Costumes    []int32              `yaml:"costumes"`
	Materials   []rawStarterMaterial `yaml:"materials"`
}

func (r rawStarter) row() StarterRow {
	out := StarterRow{CharacterID: r.CharacterID, Equipment: r.Equipment, Costumes: r.Costumes}
	for _, m := range r.Materials {
		out.Materials = append(out.Materials, StarterMaterial(m))
	}
	return out
}
