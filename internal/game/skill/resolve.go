package skill

import (
	"fmt"

	"github.com/udisondev/chronicle/internal/data"
	"github.com/udisondev/chronicle/internal/game/combat"
	"github.com/udisondev/chronicle/internal/game/event"
	"github.com/udisondev/chronicle/internal/model"
	"github.com/udisondev/chronicle/internal/random"
)

// Result is the outcome of one skill use.
type Result struct {
	// Amount is total damage dealt or HP restored.
	Amount int64
	// Affected lists targets in the order they were resolved, each once.
	Affected []event.ActorID
	// Events to append to the battle log, in order.
	Events []event.Event
}

type resolution struct {
	caster Combatant
	skill  *Skill
	src    random.Source
	res    Result
	killed map[event.ActorID]bool
}

func (r *resolution) affect(id event.ActorID) {
	for _, a := range r.res.Affected {
		if a == id {
			return
		}
	}
	r.res.Affected = append(r.res.Affected, id)
}

// Resolve applies s cast by caster. It does not touch cooldowns.
//
// A target killed by a hit receives no further hits of the same use and
// gets exactly one Dead event. The HP cost is paid after the effect and may
// kill the caster.
func Resolve(caster Combatant, s *Skill, ts Targets, src random.Source) (Result, error) {
	if caster.IsDead() {
		return Result{}, fmt.Errorf("%w: dead actor %d resolving skill %d", model.ErrInvariant, caster.ID(), s.ID())
	}

	r := &resolution{caster: caster, skill: s, src: src, killed: make(map[event.ActorID]bool)}
	targets := SelectTargets(caster, s, ts)

	switch s.Row.Category {
	case data.CategoryNormal, data.CategoryBlow, data.CategoryDouble, data.CategoryArea:
		r.attack(targets)
	case data.CategoryHeal:
		r.heal(targets)
	case data.CategoryBuff, data.CategoryDebuff:
		r.buff(targets)
	default:
		return Result{}, fmt.Errorf("%w: skill %d has unknown category %d", model.ErrInvariant, s.ID(), s.Row.Category)
	}

	if s.Row.HPCost > 0 {
		caster.TakeDamage(s.Row.HPCost)
		if caster.IsDead() && !r.killed[caster.ID()] {
			r.res.Events = append(r.res.Events, event.Dead{Actor: caster.ID()})
		}
	}
	return r.res, nil
}

func (r *resolution) attack(targets []Combatant) {
	hits := r.skill.HitCount()
	for _, target := range targets {
		r.affect(target.ID())
		for range hits {
			// убитая цель выпадает из оставшихся ударов
			if target.IsDead() {
				break
			}
			strike := combat.CalcStrike(r.src, r.caster.Stats(), target.Stats(), r.skill.Row.Power)
			hp := target.HP()
			if !strike.Missed {
				hp = target.TakeDamage(strike.Damage)
				r.res.Amount += strike.Damage
			}
			r.res.Events = append(r.res.Events, event.Damage{
				Source:   r.caster.ID(),
				Target:   target.ID(),
				Skill:    r.skill.ID(),
				Amount:   strike.Damage,
				Critical: strike.Critical,
				Missed:   strike.Missed,
				HP:       max(hp, 0),
			})
			if target.IsDead() {
				r.killed[target.ID()] = true
				r.res.Events = append(r.res.Events, event.Dead{Actor: target.ID()})
			}
		}
	}
}

func (r *resolution) heal(targets []Combatant) {
	for _, target := range targets {
		r.affect(target.ID())
		amount, crit := combat.CalcHeal(r.src, r.caster.Stats(), r.skill.Row.Power)
		restored := target.Heal(amount)
		r.res.Amount += restored
		r.res.Events = append(r.res.Events, event.Heal{
			Source:   r.caster.ID(),
			Target:   target.ID(),
			Skill:    r.skill.ID(),
			Amount:   restored,
			Critical: crit,
			HP:       target.HP(),
		})
	}
}

func (r *resolution) buff(targets []Combatant) {
	for _, target := range targets {
		r.affect(target.ID())
		target.AddBuff(Buff{Row: r.skill.Buff, Source: r.caster.ID(), Remaining: r.skill.Buff.Duration})
		r.res.Events = append(r.res.Events, event.Buff{
			Source:   r.caster.ID(),
			Target:   target.ID(),
			Skill:    r.skill.ID(),
			BuffID:   r.skill.Buff.ID,
			Duration: r.skill.Buff.Duration,
		})
	}
}
