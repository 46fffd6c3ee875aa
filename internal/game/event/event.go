// Package event defines the battle event log: the only externally
// observable record of a simulation run.
//
// Events are immutable once appended; the log is never reordered or trimmed.
// Encode produces the canonical byte form used to compare two runs.
package event

// Kind tags an event variant.
type Kind string

const (
	KindSpawnWave   Kind = "SpawnWave"
	KindTurnStart   Kind = "TurnStart"
	KindDamage      Kind = "Damage"
	KindHeal        Kind = "Heal"
	KindBuff        Kind = "Buff"
	KindDead        Kind = "Dead"
	KindWaveTurnEnd Kind = "WaveTurnEnd"
	KindGetExp      Kind = "GetExp"
	KindGetReward   Kind = "GetReward"
	KindDropBox     Kind = "DropBox"
)

// Event is one of the variants below. The set is closed.
type Event interface {
	Kind() Kind
	isEvent()
}

// ActorID identifies an actor within one run. The player is always 1;
// enemies get increasing ids in spawn order.
type ActorID int32

// PlayerID is the actor id of the player.
const PlayerID ActorID = 1

// Spawned describes one enemy entering the battle.
type Spawned struct {
	Actor       ActorID `json:"actor"`
	CharacterID int32   `json:"character_id"`
	Level       int32   `json:"level"`
	HP          int64   `json:"hp"`
}

// Item is a material stack granted by a drop or reward.
type Item struct {
	MaterialID int32 `json:"material_id"`
	Count      int   `json:"count"`
}

// SpawnWave starts a wave. Wave is 1-based.
type SpawnWave struct {
	Wave    int       `json:"wave"`
	Enemies []Spawned `json:"enemies"`
}

// TurnStart opens an actor turn. Turn counts actor turns across the stage.
type TurnStart struct {
	Turn  int     `json:"turn"`
	Actor ActorID `json:"actor"`
	Skill int32   `json:"skill"`
}

// Damage is one hit. Multi-hit skills emit one Damage per hit.
type Damage struct {
	Source   ActorID `json:"source"`
	Target   ActorID `json:"target"`
	Skill    int32   `json:"skill"`
	Amount   int64   `json:"amount"`
	Critical bool    `json:"critical,omitempty"`
	Missed   bool    `json:"missed,omitempty"`
	HP       int64   `json:"hp"` // HP цели после удара
}

// Heal restores HP.
type Heal struct {
	Source   ActorID `json:"source"`
	Target   ActorID `json:"target"`
	Skill    int32   `json:"skill"`
	Amount   int64   `json:"amount"`
	Critical bool    `json:"critical,omitempty"`
	HP       int64   `json:"hp"`
}

// Buff attaches a timed modifier (buff or debuff) to a target.
type Buff struct {
	Source   ActorID `json:"source"`
	Target   ActorID `json:"target"`
	Skill    int32   `json:"skill"`
	BuffID   int32   `json:"buff_id"`
	Duration int     `json:"duration"`
}

// Dead is emitted exactly once per actor.
type Dead struct {
	Actor ActorID `json:"actor"`
}

// WaveTurnEnd closes a wave. Every log ends with one.
type WaveTurnEnd struct {
	Wave int `json:"wave"`
	Turn int `json:"turn"`
}

// GetExp grants stage exp to the player.
type GetExp struct {
	Actor ActorID `json:"actor"`
	Exp   int64   `json:"exp"`
	Level int32   `json:"level"` // уровень после начисления
}

// GetReward lists the stage clear rewards.
type GetReward struct {
	Items []Item `json:"items"`
}

// DropBox lists the materials dropped by a cleared wave.
type DropBox struct {
	Wave  int    `json:"wave"`
	Items []Item `json:"items"`
}

func (SpawnWave) Kind() Kind   { return KindSpawnWave }
func (TurnStart) Kind() Kind   { return KindTurnStart }
func (Damage) Kind() Kind      { return KindDamage }
func (Heal) Kind() Kind        { return KindHeal }
func (Buff) Kind() Kind        { return KindBuff }
func (Dead) Kind() Kind        { return KindDead }
func (WaveTurnEnd) Kind() Kind { return KindWaveTurnEnd }
func (GetExp) Kind() Kind      { return KindGetExp }
func (GetReward) Kind() Kind   { return KindGetReward }
func (DropBox) Kind() Kind     { return KindDropBox }

func (SpawnWave) isEvent()   {}
func (TurnStart) isEvent()   {}
func (Damage) isEvent()      {}
func (Heal) isEvent()        {}
func (Buff) isEvent()        {}
func (Dead) isEvent()        {}
func (WaveTurnEnd) isEvent() {}
func (GetExp) isEvent()      {}
func (GetReward) isEvent()   {}
func (DropBox) isEvent()     {}
