package model

import (
	"fmt"
	"strings"
)

// StatType identifies a combat attribute.
type StatType int8

const (
	StatNone StatType = iota
	StatHP
	StatATK
	StatDEF
	StatCRI  // шанс крита, %
	StatCDMG // множитель крит. урона, % (150 = x1.5)
	StatHIT
	StatSPD
)

var statNames = [...]string{
	StatNone: "NONE",
	StatHP:   "HP",
	StatATK:  "ATK",
	StatDEF:  "DEF",
	StatCRI:  "CRI",
	StatCDMG: "CDMG",
	StatHIT:  "HIT",
	StatSPD:  "SPD",
}

// String returns the table name of the stat.
func (s StatType) String() string {
	if int(s) < 0 || int(s) >= len(statNames) {
		return "UNKNOWN"
	}
	return statNames[s]
}

// ParseStatType parses a stat name as written in content tables.
func ParseStatType(s string) (StatType, error) {
	for i, name := range statNames {
		if strings.EqualFold(name, s) {
			return StatType(i), nil
		}
	}
	return StatNone, fmt.Errorf("%w: stat type %q", ErrValidation, s)
}

// Stats is a flat set of combat attributes. Integers only: every value that
// feeds the simulation must be reproducible bit-for-bit.
type Stats struct {
	HP   int64
	ATK  int64
	DEF  int64
	CRI  int64
	CDMG int64
	HIT  int64
	SPD  int64
}

// Get returns the value of one stat.
func (s Stats) Get(t StatType) int64 {
	switch t {
	case StatHP:
		return s.HP
	case StatATK:
		return s.ATK
	case StatDEF:
		return s.DEF
	case StatCRI:
		return s.CRI
	case StatCDMG:
		return s.CDMG
	case StatHIT:
		return s.HIT
	case StatSPD:
		return s.SPD
	default:
		return 0
	}
}

// Add returns s with v added to stat t.
func (s Stats) Add(t StatType, v int64) Stats {
	switch t {
	case StatHP:
		s.HP += v
	case StatATK:
		s.ATK += v
	case StatDEF:
		s.DEF += v
	case StatCRI:
		s.CRI += v
	case StatCDMG:
		s.CDMG += v
	case StatHIT:
		s.HIT += v
	case StatSPD:
		s.SPD += v
	}
	return s
}

// Plus returns the field-wise sum.
func (s Stats) Plus(o Stats) Stats {
	return Stats{
		HP:   s.HP + o.HP,
		ATK:  s.ATK + o.ATK,
		DEF:  s.DEF + o.DEF,
		CRI:  s.CRI + o.CRI,
		CDMG: s.CDMG + o.CDMG,
		HIT:  s.HIT + o.HIT,
		SPD:  s.SPD + o.SPD,
	}
}

// ModifierOp says how a StatModifier is applied.
type ModifierOp int8

const (
	OpAdd     ModifierOp = iota // значение прибавляется
	OpPercent                   // процент от текущего стата, с отбрасыванием дроби
)

// ParseModifierOp parses "add" / "percent".
func ParseModifierOp(s string) (ModifierOp, error) {
	switch strings.ToLower(s) {
	case "", "add":
		return OpAdd, nil
	case "percent":
		return OpPercent, nil
	default:
		return OpAdd, fmt.Errorf("%w: modifier op %q", ErrValidation, s)
	}
}

// StatModifier changes one stat.
type StatModifier struct {
	Stat  StatType
	Op    ModifierOp
	Value int64
}

// Apply returns s modified by m.
func (m StatModifier) Apply(s Stats) Stats {
	switch m.Op {
	case OpPercent:
		return s.Add(m.Stat, s.Get(m.Stat)*m.Value/100)
	default:
		return s.Add(m.Stat, m.Value)
	}
}

// ResolvedStats are the final attributes of a combatant.
// Optional holds stats granted by costumes; they are kept apart so level
// scaling never compounds them.
type ResolvedStats struct {
	Base     Stats
	Optional Stats
}

// Total returns Base + Optional.
func (r ResolvedStats) Total() Stats { return r.Base.Plus(r.Optional) }

func (r ResolvedStats) HP() int64   { return r.Base.HP + r.Optional.HP }
func (r ResolvedStats) ATK() int64  { return r.Base.ATK + r.Optional.ATK }
func (r ResolvedStats) DEF() int64  { return r.Base.DEF + r.Optional.DEF }
func (r ResolvedStats) CRI() int64  { return r.Base.CRI + r.Optional.CRI }
func (r ResolvedStats) CDMG() int64 { return r.Base.CDMG + r.Optional.CDMG }
func (r ResolvedStats) HIT() int64  { return r.Base.HIT + r.Optional.HIT }
func (r ResolvedStats) SPD() int64  { return r.Base.SPD + r.Optional.SPD }
