// Package battle runs a stage: waves of enemies against one player, turn
// order by speed, and a flat event log as the only observable output.
//
// A run is a pure function of (tables, avatar, stage, seed): two runs with
// the same inputs produce byte-identical encoded logs.
package battle

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"

	"github.com/udisondev/chronicle/internal/data"
	"github.com/udisondev/chronicle/internal/game/combat"
	"github.com/udisondev/chronicle/internal/game/event"
	"github.com/udisondev/chronicle/internal/game/skill"
	"github.com/udisondev/chronicle/internal/game/stats"
	"github.com/udisondev/chronicle/internal/model"
	"github.com/udisondev/chronicle/internal/random"
)

// Outcome is how a run ended.
type Outcome int8

const (
	OutcomeVictory Outcome = iota + 1
	OutcomeDefeat
	OutcomeTurnLimit
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeTurnLimit:
		return "turn_limit"
	default:
		return "unknown"
	}
}

type state int8

const (
	stateWaveStart state = iota
	stateActorTurn
	stateWaveEnd
	stateDone
)

// Option configures a Simulator.
type Option func(*options)

type options struct {
	turnLimit int
	hp        int64
	hpSet     bool
}

// WithTurnLimit caps the total number of actor turns below the stage limit.
// Zero or negative keeps the stage limit.
func WithTurnLimit(n int) Option {
	return func(o *options) { o.turnLimit = n }
}

// WithStartingHP starts the player at hp instead of full HP.
// Values above max HP are clamped; zero or below starts the player dead.
func WithStartingHP(hp int64) Option {
	return func(o *options) {
		o.hp = hp
		o.hpSet = true
	}
}

// PlayerSnapshot is the player state after the run.
type PlayerSnapshot struct {
	Level int32
	Exp   int64
	HP    int64
	MaxHP int64
	Stats model.ResolvedStats
}

// Result is the output of one run.
type Result struct {
	Outcome      Outcome
	Player       PlayerSnapshot
	Rewards      []event.Item // дроп и награды stage, слиты и отсортированы по material id
	Log          *event.Log
	ClearedWaves int
	Turns        int
}

// Simulator runs one stage once. It is not safe for concurrent use;
// run independent simulators in parallel instead (see RunParallel).
type Simulator struct {
	tables *data.Tables
	stage  data.StageRow
	src    random.Source
	opts   options

	row       data.CharacterRow
	equipment []model.Equipment
	costumes  []model.Costume

	player  *Actor
	enemies []*Actor
	sched   *Scheduler
	log     event.Log

	state    state
	ran      bool
	wave     int // индекс в stage.Waves
	turn     int
	waveTurn int
	nextID   event.ActorID
	cleared  int
	rewards  map[int32]int
	outcome  Outcome
}

// New prepares a run of stageID for avatar. The avatar is not modified.
func New(t *data.Tables, avatar model.Avatar, stageID int32, src random.Source, opts ...Option) (*Simulator, error) {
	stage, ok := t.Stages.Get(stageID)
	if !ok {
		return nil, fmt.Errorf("%w: stage %d", model.ErrUnknownRow, stageID)
	}
	if len(stage.Waves) == 0 {
		return nil, fmt.Errorf("%w: stage %d has no waves", model.ErrValidation, stageID)
	}
	row, ok := t.Characters.Get(avatar.CharacterID)
	if !ok {
		return nil, fmt.Errorf("%w: character %d", model.ErrUnknownRow, avatar.CharacterID)
	}

	s := &Simulator{
		tables:    t,
		stage:     stage,
		src:       src,
		row:       row,
		equipment: avatar.Inventory.EquippedEquipment(),
		costumes:  avatar.Inventory.EquippedCostumes(),
		sched:     NewScheduler(),
		nextID:    event.PlayerID + 1,
		rewards:   make(map[int32]int),
	}
	for _, opt := range opts {
		opt(&s.opts)
	}

	resolved, err := stats.Resolve(t, row, avatar.Level, s.equipment, s.costumes)
	if err != nil {
		return nil, fmt.Errorf("resolving player stats: %w", err)
	}

	var skillIDs []int32
	for _, e := range s.equipment {
		skillIDs = append(skillIDs, e.SkillIDs...)
	}
	skills, err := skill.FromTableAll(t, skillIDs)
	if err != nil {
		return nil, fmt.Errorf("player skills: %w", err)
	}

	s.player = newActor(event.PlayerID, SidePlayer, avatar.CharacterID, avatar.Level, resolved, skills)
	s.player.exp = avatar.Exp
	if s.opts.hpSet {
		s.player.hp = min(s.opts.hp, s.player.MaxHP())
	}
	return s, nil
}

// Simulate runs the stage to completion. A Simulator runs once.
func (s *Simulator) Simulate() (Result, error) {
	if s.ran {
		return Result{}, fmt.Errorf("%w: simulator already ran", model.ErrInvariant)
	}
	s.ran = true

	for s.state != stateDone {
		var err error
		switch s.state {
		case stateWaveStart:
			err = s.startWave()
		case stateActorTurn:
			err = s.actorTurn()
		case stateWaveEnd:
			err = s.endWave()
		}
		if err != nil {
			return Result{}, fmt.Errorf("stage %d wave %d turn %d: %w", s.stage.ID, s.wave+1, s.turn, err)
		}
	}

	if last, ok := s.log.Last(); !ok || last.Kind() != event.KindWaveTurnEnd {
		return Result{}, fmt.Errorf("%w: log does not end with %s", model.ErrInvariant, event.KindWaveTurnEnd)
	}

	slog.Debug("simulation finished",
		"stage", s.stage.ID,
		"outcome", s.outcome,
		"turns", s.turn,
		"clearedWaves", s.cleared,
		"events", s.log.Len())

	log := s.log
	return Result{
		Outcome: s.outcome,
		Player: PlayerSnapshot{
			Level: s.player.level,
			Exp:   s.player.exp,
			HP:    max(s.player.hp, 0),
			MaxHP: s.player.MaxHP(),
			Stats: s.player.stats,
		},
		Rewards:      s.rewardItems(),
		Log:          &log,
		ClearedWaves: s.cleared,
		Turns:        s.turn,
	}, nil
}

func (s *Simulator) startWave() error {
	wave := s.stage.Waves[s.wave]

	s.enemies = make([]*Actor, 0, len(wave.Enemies))
	spawned := make([]event.Spawned, 0, len(wave.Enemies))
	for _, spawn := range wave.Enemies {
		resolved, err := stats.ForEnemy(s.tables, spawn)
		if err != nil {
			return err
		}
		skills, err := skill.FromTableAll(s.tables, spawn.SkillIDs)
		if err != nil {
			return fmt.Errorf("enemy %d skills: %w", spawn.CharacterID, err)
		}
		e := newActor(s.nextID, SideEnemy, spawn.CharacterID, spawn.Level, resolved, skills)
		s.nextID++
		s.enemies = append(s.enemies, e)
		spawned = append(spawned, event.Spawned{
			Actor:       e.ID(),
			CharacterID: spawn.CharacterID,
			Level:       spawn.Level,
			HP:          e.HP(),
		})
	}
	s.log.Append(event.SpawnWave{Wave: s.wave + 1, Enemies: spawned})

	s.sched.Reset()
	s.waveTurn = 0
	if !s.player.IsDead() {
		s.sched.Push(s.player)
	}
	for _, e := range s.enemies {
		s.sched.Push(e)
	}
	s.player.target = s.firstAliveEnemy()

	s.state = stateActorTurn
	return nil
}

func (s *Simulator) actorTurn() error {
	if s.player.IsDead() || s.firstAliveEnemy() == nil || s.limitReached() {
		s.state = stateWaveEnd
		return nil
	}

	a, err := s.sched.Pop()
	if err != nil {
		return err
	}
	s.turn++
	s.waveTurn++

	a.startTurn()
	sk := chooseSkill(a, s.src)
	s.log.Append(event.TurnStart{Turn: s.turn, Actor: a.ID(), Skill: sk.ID()})

	res, err := skill.Resolve(a, sk, s.targetsFor(a), s.src)
	if err != nil {
		return err
	}
	sk.Trigger()
	s.log.Append(res.Events...)

	for _, e := range res.Events {
		if dead, ok := e.(event.Dead); ok {
			s.sched.Remove(dead.Actor)
		}
	}

	a.endTurn()
	if s.player.target == nil || s.player.target.IsDead() {
		s.player.target = s.firstAliveEnemy()
	}
	if !a.IsDead() {
		s.sched.Push(a)
	}
	return nil
}

func (s *Simulator) endWave() error {
	wave := s.stage.Waves[s.wave]
	cleared := !s.player.IsDead() && s.firstAliveEnemy() == nil

	switch {
	case cleared:
		s.cleared++
		if items := s.roll(wave.Drops); len(items) > 0 {
			s.log.Append(event.DropBox{Wave: s.wave + 1, Items: items})
		}
		if s.wave+1 < len(s.stage.Waves) {
			s.log.Append(event.WaveTurnEnd{Wave: s.wave + 1, Turn: s.turn})
			s.wave++
			s.state = stateWaveStart
			return nil
		}
		if err := s.victory(); err != nil {
			return err
		}
		s.outcome = OutcomeVictory
	case s.player.IsDead():
		s.outcome = OutcomeDefeat
	default:
		s.outcome = OutcomeTurnLimit
	}

	s.log.Append(event.WaveTurnEnd{Wave: s.wave + 1, Turn: s.turn})
	s.state = stateDone
	return nil
}

// victory выдаёт опыт и награды stage. Текущее HP при level-up сохраняется,
// растёт только max HP.
func (s *Simulator) victory() error {
	if s.stage.Exp > 0 {
		gained := combat.GainExp(s.tables, s.player.level, s.player.exp, s.stage.Exp)
		s.player.exp = gained.Exp
		if gained.Level != s.player.level {
			resolved, err := stats.Resolve(s.tables, s.row, gained.Level, s.equipment, s.costumes)
			if err != nil {
				return fmt.Errorf("resolving stats after level up: %w", err)
			}
			s.player.level = gained.Level
			s.player.stats = resolved
		}
		s.log.Append(event.GetExp{Actor: event.PlayerID, Exp: gained.Gained, Level: s.player.level})
	}

	if items := s.roll(s.stage.Rewards); len(items) > 0 {
		s.log.Append(event.GetReward{Items: items})
	}
	return nil
}

// roll разыгрывает группы дропа и добавляет их в награды прогона.
func (s *Simulator) roll(groups []data.DropGroup) []event.Item {
	drops := combat.CalculateDrops(s.src, groups)
	items := make([]event.Item, 0, len(drops))
	for _, d := range drops {
		items = append(items, event.Item{MaterialID: d.MaterialID, Count: d.Count})
		s.rewards[d.MaterialID] += d.Count
	}
	return items
}

func (s *Simulator) rewardItems() []event.Item {
	items := make([]event.Item, 0, len(s.rewards))
	for id, count := range s.rewards {
		items = append(items, event.Item{MaterialID: id, Count: count})
	}
	slices.SortFunc(items, func(a, b event.Item) int { return cmp.Compare(a.MaterialID, b.MaterialID) })
	return items
}

func (s *Simulator) limitReached() bool {
	if lim := s.stage.Waves[s.wave].TurnLimit; lim > 0 && s.waveTurn >= lim {
		return true
	}
	limit := s.stage.TurnLimit
	if s.opts.turnLimit > 0 && (limit <= 0 || s.opts.turnLimit < limit) {
		limit = s.opts.turnLimit
	}
	return limit > 0 && s.turn >= limit
}

func (s *Simulator) firstAliveEnemy() *Actor {
	for _, e := range s.enemies {
		if !e.IsDead() {
			return e
		}
	}
	return nil
}

func (s *Simulator) targetsFor(a *Actor) skill.Targets {
	enemies := make([]skill.Combatant, 0, len(s.enemies))
	for _, e := range s.enemies {
		enemies = append(enemies, e)
	}
	player := []skill.Combatant{s.player}

	if a.Side() == SidePlayer {
		ts := skill.Targets{Enemies: enemies, Allies: player}
		if s.player.target != nil {
			ts.Current = s.player.target
		}
		return ts
	}
	return skill.Targets{Current: s.player, Enemies: player, Allies: enemies}
}
