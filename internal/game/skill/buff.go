package skill

import (
	"slices"

	"github.com/udisondev/chronicle/internal/data"
	"github.com/udisondev/chronicle/internal/game/event"
	"github.com/udisondev/chronicle/internal/model"
)

// Buff is an active timed percent modifier.
type Buff struct {
	Row       data.BuffRow
	Source    event.ActorID
	Remaining int // ходы владельца

	// Fresh: бафф наложен владельцем в его текущем ходу.
	// Тик в конце этого хода его пропускает.
	Fresh bool
}

// Buffs is the set of active buffs of one actor, in application order.
// Re-applying a buff id refreshes it in place.
type Buffs []Buff

// Add attaches b, replacing an active buff with the same id.
func (bs Buffs) Add(b Buff) Buffs {
	if i := slices.IndexFunc(bs, func(x Buff) bool { return x.Row.ID == b.Row.ID }); i >= 0 {
		bs[i] = b
		return bs
	}
	return append(bs, b)
}

// Tick consumes one owner turn and drops expired buffs.
func (bs Buffs) Tick() Buffs {
	out := bs[:0]
	for _, b := range bs {
		if b.Fresh {
			b.Fresh = false
			out = append(out, b)
			continue
		}
		b.Remaining--
		if b.Remaining > 0 {
			out = append(out, b)
		}
	}
	return out
}

// Apply returns s with every buff applied as a percent of the unbuffed value.
// Stats never go negative.
func (bs Buffs) Apply(s model.Stats) model.Stats {
	out := s
	for _, b := range bs {
		delta := s.Get(b.Row.Stat) * b.Row.Percent / 100
		out = out.Add(b.Row.Stat, delta)
		if out.Get(b.Row.Stat) < 0 {
			out = out.Add(b.Row.Stat, -out.Get(b.Row.Stat))
		}
	}
	return out
}
