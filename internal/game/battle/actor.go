package battle

import (
	"github.com/udisondev/chronicle/internal/game/event"
	"github.com/udisondev/chronicle/internal/game/skill"
	"github.com/udisondev/chronicle/internal/model"
)

// Side separates the player party from the enemies.
type Side int8

const (
	SidePlayer Side = iota
	SideEnemy
)

// Actor is a combatant owned by one simulation run.
// HP may go below zero internally; IsDead treats anything <= 0 as dead.
type Actor struct {
	id          event.ActorID
	side        Side
	characterID int32
	level       int32
	stats       model.ResolvedStats
	hp          int64
	skills      []*skill.Skill
	attack      *skill.Skill
	buffs       skill.Buffs
	target      *Actor

	exp int64 // только у игрока
}

var _ skill.Combatant = (*Actor)(nil)

func newActor(id event.ActorID, side Side, characterID, level int32, stats model.ResolvedStats, skills []*skill.Skill) *Actor {
	return &Actor{
		id:          id,
		side:        side,
		characterID: characterID,
		level:       level,
		stats:       stats,
		hp:          stats.HP(),
		skills:      skills,
		attack:      skill.DefaultAttack(),
	}
}

func (a *Actor) ID() event.ActorID { return a.id }
func (a *Actor) Side() Side        { return a.side }
func (a *Actor) Level() int32      { return a.level }
func (a *Actor) HP() int64         { return a.hp }
func (a *Actor) MaxHP() int64      { return a.stats.HP() }
func (a *Actor) IsDead() bool      { return a.hp <= 0 }

// Stats returns resolved stats with active buffs applied.
func (a *Actor) Stats() model.Stats { return a.buffs.Apply(a.stats.Total()) }

// Resolved returns the stats without buffs.
func (a *Actor) Resolved() model.ResolvedStats { return a.stats }

// Skills returns the equipped skills, default attack excluded.
func (a *Actor) Skills() []*skill.Skill { return a.skills }

func (a *Actor) TakeDamage(amount int64) int64 {
	a.hp -= amount
	return a.hp
}

func (a *Actor) Heal(amount int64) int64 {
	restored := max(0, min(amount, a.MaxHP()-a.hp))
	a.hp += restored
	return restored
}

// AddBuff attaches b. A self-applied buff lasts Remaining turns after
// the one it was cast in.
func (a *Actor) AddBuff(b skill.Buff) {
	b.Fresh = b.Source == a.id
	a.buffs = a.buffs.Add(b)
}

// Speed returns SPD used for scheduling, buffs included.
func (a *Actor) Speed() int64 { return a.Stats().SPD }

// startTurn продвигает кулдауны.
func (a *Actor) startTurn() {
	for _, s := range a.skills {
		s.Tick()
	}
}

// endTurn снимает истёкшие баффы.
func (a *Actor) endTurn() {
	a.buffs = a.buffs.Tick()
}
