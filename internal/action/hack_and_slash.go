package action

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/udisondev/chronicle/internal/game/battle"
	"github.com/udisondev/chronicle/internal/ledger"
	"github.com/udisondev/chronicle/internal/model"
)

// HackAndSlash runs a stage with the listed items equipped and applies the
// result: exp and level, reward materials and stage progress.
type HackAndSlash struct {
	AvatarAddress ledger.Address
	StageID       int32
	Equipments    []uuid.UUID
	Costumes      []uuid.UUID
}

var _ Action = HackAndSlash{}

// Prepare loads the avatar with the requested items equipped.
func (a HackAndSlash) Prepare(ctx Context, r ledger.Reader) (model.Avatar, error) {
	avatar, err := ownedAvatar(r, ctx.Signer, a.AvatarAddress)
	if err != nil {
		return model.Avatar{}, err
	}
	if _, ok := ctx.Tables.Stages.Get(a.StageID); !ok {
		return model.Avatar{}, fmt.Errorf("%w: stage %d", model.ErrUnknownRow, a.StageID)
	}
	if a.StageID > avatar.ClearedStageID+1 {
		return model.Avatar{}, fmt.Errorf("%w: stage %d, cleared %d", model.ErrStageLocked, a.StageID, avatar.ClearedStageID)
	}
	if err := avatar.Inventory.Equip(a.Equipments, a.Costumes); err != nil {
		return model.Avatar{}, err
	}
	return avatar, nil
}

func (a HackAndSlash) Execute(ctx Context) (*ledger.State, Result, error) {
	if err := checkContext(ctx); err != nil {
		return nil, Result{}, err
	}
	if ctx.Rehearsal {
		return rehearse(ctx, a.AvatarAddress)
	}

	avatar, err := a.Prepare(ctx, ctx.State)
	if err != nil {
		return nil, Result{}, err
	}

	sim, err := battle.New(ctx.Tables, avatar, a.StageID, ctx.Random, battle.WithTurnLimit(ctx.Config.Battle.TurnLimit))
	if err != nil {
		return nil, Result{}, err
	}
	res, err := sim.Simulate()
	if err != nil {
		return nil, Result{}, fmt.Errorf("simulating stage %d: %w", a.StageID, err)
	}

	avatar.Level = res.Player.Level
	avatar.Exp = res.Player.Exp
	for _, item := range res.Rewards {
		m, err := ctx.Tables.NewMaterial(item.MaterialID, item.Count)
		if err != nil {
			return nil, Result{}, fmt.Errorf("reward: %w", err)
		}
		avatar.Inventory.AddMaterial(m)
	}
	if res.Outcome == battle.OutcomeVictory {
		avatar.ClearStage(a.StageID)
	}
	avatar.BlockIndex = ctx.BlockIndex

	next := ctx.State.Clone()
	next.SetAvatar(a.AvatarAddress, avatar)

	slog.Debug("stage played",
		"avatar", a.AvatarAddress,
		"stage", a.StageID,
		"outcome", res.Outcome,
		"turns", res.Turns,
		"level", avatar.Level)

	return next, Result{AvatarAddress: a.AvatarAddress, Battle: &res}, nil
}
