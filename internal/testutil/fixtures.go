package testutil

import (
	"github.com/google/uuid"

	"github.com/udisondev/chronicle/internal/data"
	"github.com/udisondev/chronicle/internal/model"
)

// Row ids of the fixture tables.
const (
	CharPlayer = 1 // HP 100, ATK 20, DEF 5
	CharDummy  = 2 // HP 1, ничего не умеет
	CharBrute  = 3 // HP 80, ATK 12
	CharWall   = 4 // HP 100000, DEF 1000

	EquipSword    = 10 // оружие grade 1, ATK +10, сет 1
	EquipSword2   = 11 // оружие grade 1, ATK +12
	EquipArmor    = 12 // броня grade 1, HP +50, сет 1
	EquipAxe      = 13 // оружие grade 2
	EquipRing     = 14 // кольцо grade 1, ATK +10%
	CostumeFull   = 40
	MaterialOre   = 300
	MaterialJelly = 301

	SkillNormal  = 1
	SkillDouble  = 2
	SkillBlow    = 3
	SkillArea    = 4
	SkillHeal    = 5
	SkillBuff    = 6
	SkillDebuff  = 7
	SkillSuicide = 8

	BuffRage  = 1
	BuffArmor = 2

	StageDummy = 1 // один манекен, победа гарантирована
	StageTwo   = 2 // две волны громил
	StageWall  = 3 // не пробить за лимит ходов
)

// Tables returns small, hand-made content tables with round numbers.
// Every call builds a fresh copy.
func Tables() *data.Tables {
	t := &data.Tables{
		Characters: data.MustSheet([]data.CharacterRow{
			{ID: CharPlayer,
				Base:   model.Stats{HP: 100, ATK: 20, DEF: 5, CRI: 0, CDMG: 150, HIT: 10, SPD: 100},
				Growth: model.Stats{HP: 10, ATK: 2, DEF: 1}},
			{ID: CharDummy, Base: model.Stats{HP: 1, ATK: 1, CDMG: 150, SPD: 50}},
			{ID: CharBrute,
				Base:   model.Stats{HP: 80, ATK: 12, DEF: 2, CDMG: 150, HIT: 10, SPD: 80},
				Growth: model.Stats{HP: 5, ATK: 1}},
			{ID: CharWall, Base: model.Stats{HP: 100000, ATK: 1, DEF: 1000, CDMG: 150, HIT: 10, SPD: 10}},
		}, func(r data.CharacterRow) int32 { return r.ID }),

		Levels: data.MustSheet([]data.CharacterLevelRow{
			{Level: 1, Exp: 0, ExpNeed: 100},
			{Level: 2, Exp: 100, ExpNeed: 200},
			{Level: 3, Exp: 300, ExpNeed: 300},
			{Level: 4, Exp: 600, ExpNeed: 400},
			{Level: 5, Exp: 1000, ExpNeed: 500},
		}, func(r data.CharacterLevelRow) int32 { return r.Level }),

		Equipment: data.MustSheet([]data.EquipmentItemRow{
			{ID: EquipSword, SubType: model.SubTypeWeapon, Grade: 1,
				Stat: model.StatModifier{Stat: model.StatATK, Value: 10}, SetID: 1, SkillIDs: []int32{SkillDouble}},
			{ID: EquipSword2, SubType: model.SubTypeWeapon, Grade: 1,
				Stat: model.StatModifier{Stat: model.StatATK, Value: 12}},
			{ID: EquipArmor, SubType: model.SubTypeArmor, Grade: 1,
				Stat: model.StatModifier{Stat: model.StatHP, Value: 50}, SetID: 1},
			{ID: EquipAxe, SubType: model.SubTypeWeapon, Grade: 2,
				Stat: model.StatModifier{Stat: model.StatATK, Value: 30}},
			{ID: EquipRing, SubType: model.SubTypeRing, Grade: 1,
				Stat: model.StatModifier{Stat: model.StatATK, Op: model.OpPercent, Value: 10}},
		}, func(r data.EquipmentItemRow) int32 { return r.ID }),

		SetEffects: []data.SetEffectRow{
			{SetID: 1, Count: 2, Modifiers: []model.StatModifier{{Stat: model.StatDEF, Value: 5}}},
		},

		Costumes: data.MustSheet([]data.CostumeItemRow{
			{ID: CostumeFull, SubType: model.SubTypeFullCostume},
		}, func(r data.CostumeItemRow) int32 { return r.ID }),
		CostumeStats: data.MustSheet([]data.CostumeStatRow{
			{ID: 1, CostumeID: CostumeFull, Stat: model.StatHP, Value: 20},
			{ID: 2, CostumeID: CostumeFull, Stat: model.StatATK, Value: 3},
		}, func(r data.CostumeStatRow) int32 { return r.ID }),

		Materials: data.MustSheet([]data.MaterialItemRow{
			{ID: MaterialOre, SubType: model.SubTypeEquipmentMaterial, Grade: 1},
			{ID: MaterialJelly, SubType: model.SubTypeMonsterPart, Grade: 1},
		}, func(r data.MaterialItemRow) int32 { return r.ID }),

		Skills: data.MustSheet([]data.SkillRow{
			{ID: SkillNormal, Category: data.CategoryNormal, Power: 100},
			{ID: SkillDouble, Category: data.CategoryDouble, Power: 100, Cooldown: 2, Chance: 100},
			{ID: SkillBlow, Category: data.CategoryBlow, Power: 50, HitCount: 3, Cooldown: 3, Chance: 100},
			{ID: SkillArea, Category: data.CategoryArea, Power: 100, Cooldown: 2, Chance: 100},
			{ID: SkillHeal, Category: data.CategoryHeal, Power: 50, Cooldown: 3, Chance: 100},
			{ID: SkillBuff, Category: data.CategoryBuff, Cooldown: 4, Chance: 100, BuffID: BuffRage},
			{ID: SkillDebuff, Category: data.CategoryDebuff, Cooldown: 4, Chance: 100, BuffID: BuffArmor},
			{ID: SkillSuicide, Category: data.CategoryNormal, Power: 100, HPCost: 1000, Chance: 100},
		}, func(r data.SkillRow) int32 { return r.ID }),

		Buffs: data.MustSheet([]data.BuffRow{
			{ID: BuffRage, Stat: model.StatATK, Percent: 50, Duration: 2},
			{ID: BuffArmor, Stat: model.StatDEF, Percent: -50, Duration: 2},
		}, func(r data.BuffRow) int32 { return r.ID }),

		EnhancementCosts: data.MustSheet([]data.EnhancementCostRow{
			{Grade: 1, Level: 0, Cost: 1000, SuccessRateBps: 10000},
			{Grade: 1, Level: 1, Cost: 100, SuccessRateBps: 5000, DowngradeOnFailure: 1},
			{Grade: 1, Level: 2, Cost: 200, SuccessRateBps: 5000},
			{Grade: 1, Level: 3, Cost: 0, SuccessRateBps: 0},
			{Grade: 1, Level: 4, Cost: 10, SuccessRateBps: 0, DowngradeOnFailure: 2},
			{Grade: 2, Level: 0, Cost: 50, SuccessRateBps: 10000},
		}, func(r data.EnhancementCostRow) int64 { return data.EnhancementKey(r.Grade, r.Level) }),

		Stages: data.MustSheet([]data.StageRow{
			{ID: StageDummy, TurnLimit: 10, Exp: 50,
				Waves: []data.WaveRow{{
					Enemies: []data.EnemySpawn{{CharacterID: CharDummy, Level: 1}},
					Drops: []data.DropGroup{{RatioBps: 10000, Items: []data.DropItem{
						{MaterialID: MaterialJelly, RatioBps: 10000, Min: 1, Max: 1},
					}}},
				}},
				Rewards: []data.DropGroup{{RatioBps: 10000, Items: []data.DropItem{
					{MaterialID: MaterialOre, RatioBps: 10000, Min: 2, Max: 2},
				}}},
			},
			{ID: StageTwo, TurnLimit: 200, Exp: 150,
				Waves: []data.WaveRow{
					{Enemies: []data.EnemySpawn{{CharacterID: CharBrute, Level: 1}, {CharacterID: CharBrute, Level: 1}}},
					{Enemies: []data.EnemySpawn{{CharacterID: CharBrute, Level: 3, SkillIDs: []int32{SkillBuff}}},
						Drops: []data.DropGroup{{RatioBps: 5000, Items: []data.DropItem{
							{MaterialID: MaterialOre, RatioBps: 5000, Min: 1, Max: 3},
						}}}},
				},
			},
			{ID: StageWall, TurnLimit: 6, Exp: 10,
				Waves: []data.WaveRow{{Enemies: []data.EnemySpawn{{CharacterID: CharWall, Level: 1}}}},
			},
		}, func(r data.StageRow) int32 { return r.ID }),

		Starter: data.StarterRow{
			CharacterID: CharPlayer,
			Equipment:   []int32{EquipSword, EquipSword2, EquipArmor},
			Costumes:    []int32{CostumeFull},
			Materials:   []data.StarterMaterial{{MaterialID: MaterialOre, Count: 3}},
		},
	}
	if err := t.Validate(); err != nil {
		panic("fixture tables: " + err.Error())
	}
	return t
}

// Equipment instantiates a fixture equipment row with a fixed item id.
func Equipment(t *data.Tables, rowID int32, level int32, id byte) model.Equipment {
	e, err := t.NewEquipment(rowID, uuid.UUID{id}, level)
	if err != nil {
		panic(err)
	}
	return e
}

// Avatar returns a level-1 avatar of CharPlayer with an empty inventory.
func Avatar(address string) model.Avatar {
	return model.Avatar{
		Address:      address,
		AgentAddress: "0x0000000000000000000000000000000000000a11",
		Name:         "tester",
		CharacterID:  CharPlayer,
		Level:        1,
	}
}
