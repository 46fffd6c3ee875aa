package combat

import (
	"log/slog"

	"github.com/udisondev/chronicle/internal/data"
)

// ExpResult describes the state after gaining experience.
type ExpResult struct {
	Level    int32
	Exp      int64
	Gained   int64 // фактически начислено с учётом потолка уровня
	LevelsUp int32
}

// MaxExp returns the exp cap: one point short of leaving the last level.
func MaxExp(t *data.Tables) int64 {
	row, ok := t.Levels.Get(t.MaxLevel())
	if !ok {
		return 0
	}
	return row.Exp + max(row.ExpNeed-1, 0)
}

// GainExp adds exp and levels up as many times as the curve allows.
// Exp is capped at MaxExp; a level-up never changes current HP, the caller
// only gets a new max HP from the next stat resolution.
func GainExp(t *data.Tables, level int32, exp, amount int64) ExpResult {
	if amount < 0 {
		amount = 0
	}

	total := min(exp+amount, max(MaxExp(t), exp))
	newLevel := t.LevelForExp(total, level)

	if newLevel > level {
		slog.Debug("level up",
			"oldLevel", level,
			"newLevel", newLevel,
			"exp", total)
	}

	return ExpResult{
		Level:    max(newLevel, level),
		Exp:      total,
		Gained:   total - exp,
		LevelsUp: max(newLevel-level, 0),
	}
}
