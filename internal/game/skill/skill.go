// Package skill resolves skills: target selection, damage, heals and
// timed buffs.
//
// Categories form a closed set dispatched by one exhaustive switch in
// Resolve; adding a category means extending that switch.
package skill

import (
	"fmt"
	"slices"

	"github.com/udisondev/chronicle/internal/data"
	"github.com/udisondev/chronicle/internal/game/event"
	"github.com/udisondev/chronicle/internal/model"
)

// DefaultAttackID is the id of the fallback attack every actor has.
const DefaultAttackID int32 = 100000

// Default hit counts per category when the row leaves HitCount at 0.
const (
	DoubleHits = 2
	BlowHits   = 3
)

// Skill is an equipped skill with its cooldown state.
// The row is immutable; only the cooldown counter changes.
type Skill struct {
	Row  data.SkillRow
	Buff data.BuffRow // пусто, если не Buff/Debuff

	cooldown int // осталось ходов владельца
}

// DefaultAttack returns the Normal power-100 attack.
func DefaultAttack() *Skill {
	return &Skill{Row: data.SkillRow{ID: DefaultAttackID, Category: data.CategoryNormal, Power: 100}}
}

// FromTable builds the skill id from the tables.
func FromTable(t *data.Tables, id int32) (*Skill, error) {
	row, ok := t.Skills.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: skill %d", model.ErrUnknownRow, id)
	}
	s := &Skill{Row: row}
	if row.BuffID != 0 {
		buff, ok := t.Buffs.Get(row.BuffID)
		if !ok {
			return nil, fmt.Errorf("%w: buff %d", model.ErrUnknownRow, row.BuffID)
		}
		s.Buff = buff
	}
	return s, nil
}

// FromTableAll builds skills in order, skipping duplicates and the default attack id.
func FromTableAll(t *data.Tables, ids []int32) ([]*Skill, error) {
	var out []*Skill
	seen := make(map[int32]bool, len(ids))
	for _, id := range ids {
		if seen[id] || id == DefaultAttackID {
			continue
		}
		seen[id] = true
		s, err := FromTable(t, id)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (s *Skill) ID() int32 { return s.Row.ID }

// Ready reports whether the cooldown has elapsed.
func (s *Skill) Ready() bool { return s.cooldown <= 0 }

// Cooldown returns the remaining owner turns until the skill is ready.
func (s *Skill) Cooldown() int { return s.cooldown }

// Trigger starts the cooldown after use.
func (s *Skill) Trigger() { s.cooldown = s.Row.Cooldown }

// Tick advances the cooldown by one owner turn.
func (s *Skill) Tick() {
	if s.cooldown > 0 {
		s.cooldown--
	}
}

// HitCount returns the number of hits per target.
func (s *Skill) HitCount() int {
	if s.Row.HitCount > 0 {
		return s.Row.HitCount
	}
	switch s.Row.Category {
	case data.CategoryDouble:
		return DoubleHits
	case data.CategoryBlow:
		return BlowHits
	default:
		return 1
	}
}

// TargetType resolves TargetDefault to the category default.
func (s *Skill) TargetType() data.SkillTargetType {
	if s.Row.Target != data.TargetDefault {
		return s.Row.Target
	}
	switch s.Row.Category {
	case data.CategoryArea:
		return data.TargetEnemies
	case data.CategoryHeal, data.CategoryBuff:
		return data.TargetSelf
	default:
		return data.TargetEnemy
	}
}

// Combatant is the view of an actor the resolver works with.
type Combatant interface {
	ID() event.ActorID
	// Stats returns the current effective stats (buffs applied).
	Stats() model.Stats
	HP() int64
	MaxHP() int64
	IsDead() bool
	// TakeDamage subtracts amount and returns the HP left.
	TakeDamage(amount int64) int64
	// Heal adds amount capped at MaxHP and returns the HP actually restored.
	Heal(amount int64) int64
	AddBuff(b Buff)
}

// Targets is the battlefield as seen by the caster.
// Slices are in stable spawn order and may contain dead actors.
type Targets struct {
	Current Combatant
	Enemies []Combatant
	Allies  []Combatant // включая кастера
}

func alive(cs []Combatant) []Combatant {
	var out []Combatant
	for _, c := range cs {
		if !c.IsDead() {
			out = append(out, c)
		}
	}
	return out
}

// SelectTargets returns the targets of s, never a dead one.
//
// A single-target enemy skill hits Current, or the first alive enemy if
// Current is dead. Ally picks the alive ally with the lowest HP share,
// ties going to the earlier one.
func SelectTargets(caster Combatant, s *Skill, ts Targets) []Combatant {
	switch s.TargetType() {
	case data.TargetEnemies:
		return alive(ts.Enemies)
	case data.TargetSelf:
		if caster.IsDead() {
			return nil
		}
		return []Combatant{caster}
	case data.TargetAllies:
		return alive(ts.Allies)
	case data.TargetAlly:
		candidates := alive(ts.Allies)
		if len(candidates) == 0 {
			return nil
		}
		// a/b < c/d  <=>  a*d < c*b при положительном max HP
		best := slices.MinFunc(candidates, func(a, b Combatant) int {
			l, r := a.HP()*max(b.MaxHP(), 1), b.HP()*max(a.MaxHP(), 1)
			switch {
			case l < r:
				return -1
			case l > r:
				return 1
			}
			return 0
		})
		return []Combatant{best}
	default:
		if ts.Current != nil && !ts.Current.IsDead() {
			return []Combatant{ts.Current}
		}
		if rest := alive(ts.Enemies); len(rest) > 0 {
			return rest[:1]
		}
		return nil
	}
}
