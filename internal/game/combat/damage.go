package combat

import (
	"github.com/udisondev/chronicle/internal/model"
	"github.com/udisondev/chronicle/internal/random"
)

// Hit chance bounds, percent.
const (
	BaseHitChance = 80
	MinHitChance  = 20
	MaxHitChance  = 100
)

// Strike is the outcome of one hit of a skill.
type Strike struct {
	Damage   int64
	Critical bool
	Missed   bool
}

// CalcDamage returns the raw damage of a hit: atk * power% - def, at least 1.
func CalcDamage(atk, power, def int64) int64 {
	return max(1, atk*power/100-def)
}

// CalcHitChance returns the chance in percent that an attack lands.
// Formula: 80 + 2*(hit - evasion), clamped to [20, 100].
func CalcHitChance(attackerHIT, targetHIT int64) int {
	chance := BaseHitChance + 2*(attackerHIT-targetHIT)
	return int(max(MinHitChance, min(chance, MaxHitChance)))
}

// CalcHitMiss reports whether an attack misses.
// A guaranteed hit consumes no roll.
func CalcHitMiss(src random.Source, attackerHIT, targetHIT int64) bool {
	chance := CalcHitChance(attackerHIT, targetHIT)
	if chance >= MaxHitChance {
		return false
	}
	return src.NextN(100) >= chance
}

// CalcCrit rolls a critical hit: NextN(100) < cri. Always consumes one roll.
func CalcCrit(src random.Source, cri int64) bool {
	return int64(src.NextN(100)) < cri
}

// ApplyCritical scales damage by the critical-damage percent.
func ApplyCritical(damage, cdmg int64) int64 {
	return max(1, damage*cdmg/100)
}

// CalcStrike resolves one offensive hit: hit roll, then crit roll, then damage.
// A missed strike consumes no crit roll and deals no damage.
func CalcStrike(src random.Source, attacker, target model.Stats, power int64) Strike {
	if CalcHitMiss(src, attacker.HIT, target.HIT) {
		return Strike{Missed: true}
	}
	damage := CalcDamage(attacker.ATK, power, target.DEF)
	if CalcCrit(src, attacker.CRI) {
		return Strike{Damage: ApplyCritical(damage, attacker.CDMG), Critical: true}
	}
	return Strike{Damage: damage}
}

// CalcHeal returns the heal amount of a healer with the given stats.
// Heals never miss but may crit.
func CalcHeal(src random.Source, healer model.Stats, power int64) (int64, bool) {
	amount := max(1, healer.ATK*power/100)
	if CalcCrit(src, healer.CRI) {
		return ApplyCritical(amount, healer.CDMG), true
	}
	return amount, false
}
