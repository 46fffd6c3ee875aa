package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/udisondev/chronicle/internal/action"
	"github.com/udisondev/chronicle/internal/config"
	"github.com/udisondev/chronicle/internal/data"
	"github.com/udisondev/chronicle/internal/db"
	"github.com/udisondev/chronicle/internal/game/battle"
	"github.com/udisondev/chronicle/internal/ledger"
	"github.com/udisondev/chronicle/internal/model"
	"github.com/udisondev/chronicle/internal/random"
)

// sandboxSigner: владелец всех sandbox-аватаров.
var sandboxSigner = ledger.MustParseAddress("0x0000000000000000000000000000000000000a11")

type env struct {
	cfg    config.Simulator
	tables *data.Tables
	out    io.Writer
}

func (e *env) battle(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("battle", flag.ContinueOnError)
	stage := fs.Int("stage", 1, "stage id")
	seed := fs.Int("seed", 0, "random seed")
	store := fs.Bool("store", false, "save the replay to the database")
	if err := fs.Parse(args); err != nil {
		return err
	}

	state, addr, err := e.newSandbox(int32(*seed), int32(*stage)-1)
	if err != nil {
		return err
	}
	avatar, _ := state.Avatar(addr)
	equipment, costumes := loadout(avatar.Inventory)

	actx := e.actionContext(state, int32(*seed))
	_, res, err := action.HackAndSlash{
		AvatarAddress: addr,
		StageID:       int32(*stage),
		Equipments:    equipment,
		Costumes:      costumes,
	}.Execute(actx)
	if err != nil {
		return err
	}

	encoded, err := res.Battle.Log.Encode()
	if err != nil {
		return err
	}
	fmt.Fprintln(e.out, string(encoded))

	slog.Info("battle finished",
		"stage", *stage,
		"seed", *seed,
		"outcome", res.Battle.Outcome,
		"waves", res.Battle.ClearedWaves,
		"turns", res.Battle.Turns,
		"events", res.Battle.Log.Len())

	if !*store {
		return nil
	}
	rp, err := db.NewReplay(addr, int32(*stage), int32(*seed), res.Battle)
	if err != nil {
		return err
	}
	return e.withDB(ctx, func(d *db.DB) error {
		if err := d.Replays().Save(ctx, &rp); err != nil {
			return err
		}
		slog.Info("replay stored", "id", rp.ID)
		return nil
	})
}

func (e *env) verify(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	stage := fs.Int("stage", 1, "stage id")
	seeds := fs.Int("seeds", 100, "number of seeds, starting at 0")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *seeds <= 0 {
		return fmt.Errorf("%w: -seeds must be positive", model.ErrValidation)
	}

	state, addr, err := e.newSandbox(0, int32(*stage)-1)
	if err != nil {
		return err
	}
	avatar, _ := state.Avatar(addr)
	equipment, costumes := loadout(avatar.Inventory)
	if err := avatar.Inventory.Equip(equipment, costumes); err != nil {
		return err
	}

	jobs := make([]battle.Job, *seeds)
	for i := range jobs {
		jobs[i] = battle.Job{
			Tables:  e.tables,
			Avatar:  avatar,
			StageID: int32(*stage),
			Seed:    int32(i),
			Options: []battle.Option{battle.WithTurnLimit(e.cfg.Battle.TurnLimit)},
		}
	}

	first, err := battle.RunParallel(ctx, jobs, e.cfg.Battle.Workers)
	if err != nil {
		return err
	}
	second, err := battle.RunParallel(ctx, jobs, e.cfg.Battle.Workers)
	if err != nil {
		return err
	}

	outcomes := make(map[battle.Outcome]int)
	for i := range jobs {
		same, err := first[i].Log.Equal(second[i].Log)
		if err != nil {
			return err
		}
		if !same {
			return fmt.Errorf("%w: seed %d produced different logs", model.ErrInvariant, i)
		}
		outcomes[first[i].Outcome]++
	}

	fmt.Fprintf(e.out, "verified %d seeds on stage %d: %d victory, %d defeat, %d turn_limit\n",
		*seeds, *stage,
		outcomes[battle.OutcomeVictory], outcomes[battle.OutcomeDefeat], outcomes[battle.OutcomeTurnLimit])
	return nil
}

func (e *env) enhance(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("enhance", flag.ContinueOnError)
	level := fs.Int("level", 0, "level of the target and material")
	seed := fs.Int("seed", 0, "random seed")
	balance := fs.String("balance", "10000", "signer balance before the attempt")
	store := fs.Bool("store", false, "save the attempt to the database")
	if err := fs.Parse(args); err != nil {
		return err
	}

	currency := e.cfg.Enhancement.Currency.Ledger()
	funds, err := currency.Amount(*balance)
	if err != nil {
		return err
	}

	state, addr, err := e.newSandbox(int32(*seed), e.cfg.Enhancement.RequireClearedStage)
	if err != nil {
		return err
	}
	target, material, err := e.enhancementPair(state, addr, int32(*level))
	if err != nil {
		return err
	}
	if err := state.Mint(sandboxSigner, currency, funds); err != nil {
		return err
	}

	actx := e.actionContext(state, int32(*seed))
	next, res, err := action.ItemEnhancement{
		AvatarAddress: addr,
		ItemID:        target,
		MaterialIDs:   []uuid.UUID{material},
	}.Execute(actx)
	if err != nil {
		return err
	}

	o := res.Enhancement
	fmt.Fprintf(e.out, "success=%t level %d -> %d roll=%d rate=%d cost=%s %s balance=%s\n",
		o.Success, o.PreviousLevel, o.Item.Level, o.Roll, o.RateBps,
		o.Transfer.Amount.StringFixed(currency.DecimalPlaces), currency,
		next.Balance(sandboxSigner, currency).StringFixed(currency.DecimalPlaces))

	if !*store {
		return nil
	}
	rec := db.NewEnhancementRecord(addr, actx.BlockIndex, *o)
	return e.withDB(ctx, func(d *db.DB) error {
		if err := d.Enhancements().Save(ctx, &rec); err != nil {
			return err
		}
		slog.Info("enhancement stored", "id", rec.ID)
		return nil
	})
}

func (e *env) actionContext(state *ledger.State, seed int32) action.Context {
	return action.Context{
		State:      state,
		Signer:     sandboxSigner,
		BlockIndex: 1,
		Random:     random.New(seed),
		Tables:     e.tables,
		Config:     e.cfg,
	}
}

// newSandbox создаёт свежий аватар, у которого пройдены stage до cleared включительно.
func (e *env) newSandbox(seed, cleared int32) (*ledger.State, ledger.Address, error) {
	state, res, err := action.CreateAvatar{Name: "sandbox"}.Execute(e.actionContext(ledger.NewState(), seed))
	if err != nil {
		return nil, ledger.Address{}, fmt.Errorf("creating sandbox avatar: %w", err)
	}

	avatar, _ := state.Avatar(res.AvatarAddress)
	avatar.ClearStage(cleared)
	state.SetAvatar(res.AvatarAddress, avatar)
	return state, res.AvatarAddress, nil
}

// enhancementPair выбирает два стартовых предмета одного sub type и grade
// и поднимает оба до level.
func (e *env) enhancementPair(state *ledger.State, addr ledger.Address, level int32) (uuid.UUID, uuid.UUID, error) {
	avatar, _ := state.Avatar(addr)
	inv := avatar.Inventory.Equipment
	for i := range inv {
		for j := i + 1; j < len(inv); j++ {
			if inv[i].SubType != inv[j].SubType || inv[i].Grade != inv[j].Grade {
				continue
			}
			for _, k := range []int{i, j} {
				lifted, err := e.tables.NewEquipment(inv[k].RowID, inv[k].ItemID, level)
				if err != nil {
					return uuid.Nil, uuid.Nil, err
				}
				if err := avatar.Inventory.ReplaceEquipment(lifted); err != nil {
					return uuid.Nil, uuid.Nil, err
				}
			}
			state.SetAvatar(addr, avatar)
			return inv[i].ItemID, inv[j].ItemID, nil
		}
	}
	return uuid.Nil, uuid.Nil, fmt.Errorf("%w: starter kit has no matching pair", model.ErrInvalidMaterial)
}

// loadout занимает каждый слот первыми подходящими предметами.
func loadout(inv model.Inventory) (equipment, costumes []uuid.UUID) {
	used := make(map[model.ItemSubType]int)
	for _, it := range inv.Equipment {
		if used[it.SubType] < it.SubType.SlotCapacity() {
			used[it.SubType]++
			equipment = append(equipment, it.ItemID)
		}
	}
	for _, c := range inv.Costumes {
		if used[c.SubType] < c.SubType.SlotCapacity() {
			used[c.SubType]++
			costumes = append(costumes, c.ItemID)
		}
	}
	return equipment, costumes
}

func (e *env) withDB(ctx context.Context, fn func(*db.DB) error) error {
	if !e.cfg.Database.Enabled {
		return fmt.Errorf("%w: database is disabled in config", model.ErrValidation)
	}
	dsn := e.cfg.Database.DSN()
	if err := db.RunMigrations(ctx, dsn); err != nil {
		return err
	}
	d, err := db.New(ctx, dsn)
	if err != nil {
		return err
	}
	defer d.Close()
	return fn(d)
}
