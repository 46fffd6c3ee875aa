package action

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/udisondev/chronicle/internal/game/enchant"
	"github.com/udisondev/chronicle/internal/ledger"
	"github.com/udisondev/chronicle/internal/model"
)

// ItemEnhancement enhances one equipment item of the avatar, consuming
// other equipment items as materials and charging the signer.
type ItemEnhancement struct {
	AvatarAddress ledger.Address
	ItemID        uuid.UUID
	MaterialIDs   []uuid.UUID
}

var _ Action = ItemEnhancement{}

// Prepare loads everything the resolver needs and runs every check that
// does not depend on the cost table.
func (a ItemEnhancement) Prepare(ctx Context, r ledger.Reader) (model.Avatar, enchant.Request, error) {
	avatar, err := ownedAvatar(r, ctx.Signer, a.AvatarAddress)
	if err != nil {
		return model.Avatar{}, enchant.Request{}, err
	}
	if gate := ctx.Config.Enhancement.RequireClearedStage; avatar.ClearedStageID < gate {
		return model.Avatar{}, enchant.Request{}, fmt.Errorf("%w: enhancement needs stage %d cleared", model.ErrStageLocked, gate)
	}

	target, ok := avatar.Inventory.FindEquipment(a.ItemID)
	if !ok {
		return model.Avatar{}, enchant.Request{}, fmt.Errorf("%w: equipment %s", model.ErrItemNotFound, a.ItemID)
	}
	materials := make([]model.Equipment, 0, len(a.MaterialIDs))
	for _, id := range a.MaterialIDs {
		m, ok := avatar.Inventory.FindEquipment(id)
		if !ok {
			return model.Avatar{}, enchant.Request{}, fmt.Errorf("%w: material %s", model.ErrItemNotFound, id)
		}
		materials = append(materials, m)
	}

	currency := ctx.Config.Enhancement.Currency.Ledger()
	return avatar, enchant.Request{
		Target:    target,
		Materials: materials,
		Payer:     ctx.Signer,
		Balance:   r.Balance(ctx.Signer, currency),
	}, nil
}

func (a ItemEnhancement) Execute(ctx Context) (*ledger.State, Result, error) {
	if err := checkContext(ctx); err != nil {
		return nil, Result{}, err
	}
	beneficiary, err := ctx.Config.Enhancement.BeneficiaryAddress()
	if err != nil {
		return nil, Result{}, err
	}
	if ctx.Rehearsal {
		return rehearse(ctx, ctx.Signer, a.AvatarAddress, beneficiary)
	}

	avatar, req, err := a.Prepare(ctx, ctx.State)
	if err != nil {
		return nil, Result{}, err
	}

	resolver := enchant.Resolver{
		Costs:       ctx.Tables,
		Beneficiary: beneficiary,
		Currency:    ctx.Config.Enhancement.Currency.Ledger(),
	}
	outcome, err := resolver.Enhance(req, ctx.Random)
	if err != nil {
		return nil, Result{}, err
	}

	if err := avatar.Inventory.ReplaceEquipment(outcome.Item); err != nil {
		return nil, Result{}, fmt.Errorf("%w: replacing enhanced item: %v", model.ErrInvariant, err)
	}
	for _, id := range outcome.Consumed {
		if err := avatar.Inventory.RemoveEquipment(id); err != nil {
			return nil, Result{}, fmt.Errorf("%w: removing material: %v", model.ErrInvariant, err)
		}
	}
	avatar.BlockIndex = ctx.BlockIndex

	next := ctx.State.Clone()
	t := outcome.Transfer
	if err := next.Transfer(t.From, t.To, t.Currency, t.Amount); err != nil {
		return nil, Result{}, fmt.Errorf("charging enhancement: %w", err)
	}
	next.SetAvatar(a.AvatarAddress, avatar)

	slog.Debug("item enhanced",
		"avatar", a.AvatarAddress,
		"itemID", a.ItemID,
		"success", outcome.Success,
		"level", outcome.Item.Level,
		"cost", t.Amount)

	return next, Result{AvatarAddress: a.AvatarAddress, Enhancement: &outcome}, nil
}
