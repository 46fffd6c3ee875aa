package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/chronicle/internal/model"
	"github.com/udisondev/chronicle/internal/random"
	"github.com/udisondev/chronicle/internal/testutil"
)

func TestCalcDamage(t *testing.T) {
	tests := []struct {
		atk, power, def int64
		want            int64
	}{
		{20, 100, 5, 15},
		{20, 150, 5, 25},
		{20, 50, 5, 5},
		{10, 100, 50, 1}, // округление вниз
		{0, 100, 0, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CalcDamage(tt.atk, tt.power, tt.def), "%+v", tt)
	}
}

func TestCalcHitChance(t *testing.T) {
	assert.Equal(t, 80, CalcHitChance(10, 10))
	assert.Equal(t, 100, CalcHitChance(20, 10))
	assert.Equal(t, 100, CalcHitChance(100, 0), "clamped high")
	assert.Equal(t, 20, CalcHitChance(0, 100), "clamped low")
	assert.Equal(t, 70, CalcHitChance(5, 10))
}

func TestCalcHitMiss_GuaranteedHitConsumesNoRoll(t *testing.T) {
	src := testutil.NewScripted()
	assert.False(t, CalcHitMiss(src, 50, 0))
	assert.Zero(t, src.Calls())
}

func TestCalcHitMiss_Roll(t *testing.T) {
	// шанс 80: 79 попадает, 80 мимо
	assert.False(t, CalcHitMiss(testutil.NewScripted(79), 10, 10))
	assert.True(t, CalcHitMiss(testutil.NewScripted(80), 10, 10))
}

func TestCalcStrike(t *testing.T) {
	attacker := model.Stats{ATK: 20, CRI: 10, CDMG: 150, HIT: 10}
	target := model.Stats{DEF: 5, HIT: 10}

	t.Run("normal hit", func(t *testing.T) {
		src := testutil.NewScripted(0, 50) // попадание без крита
		got := CalcStrike(src, attacker, target, 100)
		assert.Equal(t, Strike{Damage: 15}, got)
		assert.Zero(t, src.Remaining())
	})

	t.Run("critical", func(t *testing.T) {
		src := testutil.NewScripted(0, 9)
		got := CalcStrike(src, attacker, target, 100)
		assert.Equal(t, Strike{Damage: 22, Critical: true}, got)
	})

	t.Run("miss skips crit roll", func(t *testing.T) {
		src := testutil.NewScripted(95)
		got := CalcStrike(src, attacker, target, 100)
		assert.Equal(t, Strike{Missed: true}, got)
		assert.Equal(t, int64(1), src.Calls())
	})
}

func TestCalcHeal(t *testing.T) {
	healer := model.Stats{ATK: 40, CRI: 0, CDMG: 200}
	amount, crit := CalcHeal(testutil.NewScripted(0), healer, 50)
	assert.Equal(t, int64(20), amount)
	assert.False(t, crit)

	healer.CRI = 100
	amount, crit = CalcHeal(testutil.NewScripted(99), healer, 50)
	assert.Equal(t, int64(40), amount)
	assert.True(t, crit)
}

func TestCalcStrike_Deterministic(t *testing.T) {
	attacker := model.Stats{ATK: 30, CRI: 25, CDMG: 180, HIT: 5}
	target := model.Stats{DEF: 3, HIT: 12}

	run := func() []Strike {
		src := random.New(1234)
		out := make([]Strike, 50)
		for i := range out {
			out[i] = CalcStrike(src, attacker, target, 120)
		}
		return out
	}
	assert.Equal(t, run(), run())
}
