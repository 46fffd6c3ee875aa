package model

import (
	"encoding/hex"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// ItemSubType is the item category that decides equip slots and which items
// may be combined during enhancement.
type ItemSubType int8

const (
	SubTypeNone ItemSubType = iota
	SubTypeWeapon
	SubTypeArmor
	SubTypeBelt
	SubTypeNecklace
	SubTypeRing
	SubTypeFullCostume
	SubTypeHairCostume
	SubTypeTitle
	SubTypeEquipmentMaterial
	SubTypeMonsterPart
)

var subTypeNames = [...]string{
	SubTypeNone:              "None",
	SubTypeWeapon:            "Weapon",
	SubTypeArmor:             "Armor",
	SubTypeBelt:              "Belt",
	SubTypeNecklace:          "Necklace",
	SubTypeRing:              "Ring",
	SubTypeFullCostume:       "FullCostume",
	SubTypeHairCostume:       "HairCostume",
	SubTypeTitle:             "Title",
	SubTypeEquipmentMaterial: "EquipmentMaterial",
	SubTypeMonsterPart:       "MonsterPart",
}

// String returns the table name of the sub type.
func (t ItemSubType) String() string {
	if int(t) < 0 || int(t) >= len(subTypeNames) {
		return "Unknown"
	}
	return subTypeNames[t]
}

// ParseItemSubType parses a sub type name as written in content tables.
func ParseItemSubType(s string) (ItemSubType, error) {
	for i, name := range subTypeNames {
		if strings.EqualFold(name, s) {
			return ItemSubType(i), nil
		}
	}
	return SubTypeNone, fmt.Errorf("%w: item sub type %q", ErrValidation, s)
}

// IsEquipment reports whether items of this sub type go to equipment slots.
func (t ItemSubType) IsEquipment() bool {
	switch t {
	case SubTypeWeapon, SubTypeArmor, SubTypeBelt, SubTypeNecklace, SubTypeRing:
		return true
	default:
		return false
	}
}

// IsCostume reports whether items of this sub type are costumes.
func (t ItemSubType) IsCostume() bool {
	switch t {
	case SubTypeFullCostume, SubTypeHairCostume, SubTypeTitle:
		return true
	default:
		return false
	}
}

// SlotCapacity returns how many items of this sub type may be equipped at once.
func (t ItemSubType) SlotCapacity() int {
	switch {
	case t == SubTypeRing:
		return 2
	case t.IsEquipment(), t.IsCostume():
		return 1
	default:
		return 0
	}
}

// LevelStatBonusPercent is the base stat bonus per enhancement level.
const LevelStatBonusPercent = 10

// Equipment is a non-fungible, enhanceable item.
// ItemID and RowID never change; Level is the only field enhancement touches.
type Equipment struct {
	ItemID   uuid.UUID
	RowID    int32
	SubType  ItemSubType
	Grade    int32
	Level    int32
	Equipped bool
	Stat     StatModifier
	SetID    int32
	SkillIDs []int32
}

// Clone returns a copy that shares no memory with e.
func (e Equipment) Clone() Equipment {
	e.SkillIDs = slices.Clone(e.SkillIDs)
	return e
}

// StatValue returns the base stat including the enhancement bonus.
func (e Equipment) StatValue() int64 {
	return e.Stat.Value + e.Stat.Value*int64(e.Level)*LevelStatBonusPercent/100
}

// Modifier returns the modifier this item contributes when equipped.
func (e Equipment) Modifier() StatModifier {
	return StatModifier{Stat: e.Stat.Stat, Op: e.Stat.Op, Value: e.StatValue()}
}

// Costume is a non-fungible cosmetic item granting optional stats.
type Costume struct {
	ItemID   uuid.UUID
	RowID    int32
	SubType  ItemSubType
	Equipped bool
}

// Material is a fungible stack.
type Material struct {
	RowID   int32
	SubType ItemSubType
	Grade   int32
	Count   int
}

// FungibleID returns the identity shared by every unit of this material.
func (m Material) FungibleID() string {
	return MaterialFungibleID(m.RowID)
}

// MaterialFungibleID derives a stable fungible id from a material row id.
func MaterialFungibleID(rowID int32) string {
	sum := blake2b.Sum256([]byte("material:" + strconv.FormatInt(int64(rowID), 10)))
	return hex.EncodeToString(sum[:])
}
