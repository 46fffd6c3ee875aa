package model

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Inventory holds an avatar's items.
//
// Inventory is a value: Clone gives a private copy that a simulation or an
// action may mutate freely without touching the caller's long-lived state.
// Slices keep insertion order, which is part of the deterministic contract
// (equipped items are aggregated in that order).
type Inventory struct {
	Equipment []Equipment
	Costumes  []Costume
	Materials []Material
}

// Clone returns a deep copy.
func (inv Inventory) Clone() Inventory {
	out := Inventory{
		Equipment: make([]Equipment, len(inv.Equipment)),
		Costumes:  slices.Clone(inv.Costumes),
		Materials: slices.Clone(inv.Materials),
	}
	for i, e := range inv.Equipment {
		out.Equipment[i] = e.Clone()
	}
	return out
}

// AddEquipment appends an equipment item.
func (inv *Inventory) AddEquipment(e Equipment) {
	inv.Equipment = append(inv.Equipment, e.Clone())
}

// AddCostume appends a costume.
func (inv *Inventory) AddCostume(c Costume) {
	inv.Costumes = append(inv.Costumes, c)
}

// AddMaterial adds count units of a material, merging into an existing stack.
// Stacks stay sorted by row id.
func (inv *Inventory) AddMaterial(m Material) {
	if m.Count <= 0 {
		return
	}
	i, found := slices.BinarySearchFunc(inv.Materials, m.RowID, func(s Material, id int32) int {
		return cmp.Compare(s.RowID, id)
	})
	if found {
		inv.Materials[i].Count += m.Count
		return
	}
	inv.Materials = slices.Insert(inv.Materials, i, m)
}

// RemoveMaterial removes count units of material rowID.
func (inv *Inventory) RemoveMaterial(rowID int32, count int) error {
	for i := range inv.Materials {
		if inv.Materials[i].RowID != rowID {
			continue
		}
		if inv.Materials[i].Count < count {
			return fmt.Errorf("%w: material %d has %d, need %d", ErrItemNotFound, rowID, inv.Materials[i].Count, count)
		}
		inv.Materials[i].Count -= count
		if inv.Materials[i].Count == 0 {
			inv.Materials = slices.Delete(inv.Materials, i, i+1)
		}
		return nil
	}
	return fmt.Errorf("%w: material %d", ErrItemNotFound, rowID)
}

// MaterialCount returns how many units of rowID the inventory holds.
func (inv Inventory) MaterialCount(rowID int32) int {
	for _, m := range inv.Materials {
		if m.RowID == rowID {
			return m.Count
		}
	}
	return 0
}

// FindEquipment returns a copy of the equipment with the given id.
func (inv Inventory) FindEquipment(id uuid.UUID) (Equipment, bool) {
	for _, e := range inv.Equipment {
		if e.ItemID == id {
			return e.Clone(), true
		}
	}
	return Equipment{}, false
}

// ReplaceEquipment overwrites the item that has e.ItemID.
func (inv *Inventory) ReplaceEquipment(e Equipment) error {
	for i := range inv.Equipment {
		if inv.Equipment[i].ItemID == e.ItemID {
			inv.Equipment[i] = e.Clone()
			return nil
		}
	}
	return fmt.Errorf("%w: equipment %s", ErrItemNotFound, e.ItemID)
}

// RemoveEquipment deletes the item with the given id.
func (inv *Inventory) RemoveEquipment(id uuid.UUID) error {
	for i := range inv.Equipment {
		if inv.Equipment[i].ItemID == id {
			inv.Equipment = slices.Delete(inv.Equipment, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("%w: equipment %s", ErrItemNotFound, id)
}

// FindCostume returns the costume with the given id.
func (inv Inventory) FindCostume(id uuid.UUID) (Costume, bool) {
	for _, c := range inv.Costumes {
		if c.ItemID == id {
			return c, true
		}
	}
	return Costume{}, false
}

// EquippedEquipment returns copies of equipped items in inventory order.
func (inv Inventory) EquippedEquipment() []Equipment {
	var out []Equipment
	for _, e := range inv.Equipment {
		if e.Equipped {
			out = append(out, e.Clone())
		}
	}
	return out
}

// EquippedCostumes returns equipped costumes in inventory order.
func (inv Inventory) EquippedCostumes() []Costume {
	var out []Costume
	for _, c := range inv.Costumes {
		if c.Equipped {
			out = append(out, c)
		}
	}
	return out
}

// Equip unequips everything, then equips exactly the listed items.
// Slot capacity is checked per sub type; on error the inventory is unchanged.
func (inv *Inventory) Equip(equipment, costumes []uuid.UUID) error {
	next := inv.Clone()
	for i := range next.Equipment {
		next.Equipment[i].Equipped = false
	}
	for i := range next.Costumes {
		next.Costumes[i].Equipped = false
	}

	used := make(map[ItemSubType]int)
	for _, id := range equipment {
		idx := slices.IndexFunc(next.Equipment, func(e Equipment) bool { return e.ItemID == id })
		if idx < 0 {
			return fmt.Errorf("%w: equipment %s", ErrItemNotFound, id)
		}
		e := &next.Equipment[idx]
		if e.Equipped {
			return fmt.Errorf("%w: equipment %s listed twice", ErrNotEquippable, id)
		}
		used[e.SubType]++
		if used[e.SubType] > e.SubType.SlotCapacity() {
			return fmt.Errorf("%w: too many %s items", ErrNotEquippable, e.SubType)
		}
		e.Equipped = true
	}
	for _, id := range costumes {
		idx := slices.IndexFunc(next.Costumes, func(c Costume) bool { return c.ItemID == id })
		if idx < 0 {
			return fmt.Errorf("%w: costume %s", ErrItemNotFound, id)
		}
		c := &next.Costumes[idx]
		if c.Equipped {
			return fmt.Errorf("%w: costume %s listed twice", ErrNotEquippable, id)
		}
		used[c.SubType]++
		if used[c.SubType] > c.SubType.SlotCapacity() {
			return fmt.Errorf("%w: too many %s items", ErrNotEquippable, c.SubType)
		}
		c.Equipped = true
	}

	*inv = next
	return nil
}
