package action

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/chronicle/internal/ledger"
	"github.com/udisondev/chronicle/internal/model"
	"github.com/udisondev/chronicle/internal/random"
)

// AvatarDeriveFormat derives an avatar address from the agent address.
const AvatarDeriveFormat = "avatar-state-%d"

// DeriveAvatarAddress returns the address of the agent's avatar in slot index.
func DeriveAvatarAddress(agent ledger.Address, index int) ledger.Address {
	return agent.Derive(fmt.Sprintf(AvatarDeriveFormat, index))
}

// CreateAvatar creates a level-1 avatar with the starter kit.
type CreateAvatar struct {
	// AvatarAddress defaults to DeriveAvatarAddress(signer, Index) when zero.
	AvatarAddress ledger.Address
	Index         int
	Name          string
	Hair          int32
	Lens          int32
	Ear           int32
	Tail          int32
}

var _ Action = CreateAvatar{}

func (a CreateAvatar) address(signer ledger.Address) ledger.Address {
	if a.AvatarAddress.IsZero() {
		return DeriveAvatarAddress(signer, a.Index)
	}
	return a.AvatarAddress
}

// Check validates the action against r without writing.
func (a CreateAvatar) Check(ctx Context, r ledger.Reader) error {
	re, err := ctx.Config.Avatar.NameRegexp()
	if err != nil {
		return err
	}
	if !re.MatchString(a.Name) {
		return fmt.Errorf("%w: %q", model.ErrInvalidName, a.Name)
	}
	if a.Index < 0 || a.Index >= ledger.MaxAvatars {
		return fmt.Errorf("%w: avatar index %d out of [0, %d)", model.ErrValidation, a.Index, ledger.MaxAvatars)
	}

	addr := a.address(ctx.Signer)
	if _, ok := r.Avatar(addr); ok {
		return fmt.Errorf("%w: %s", model.ErrAvatarExists, addr)
	}
	if agent, ok := r.Agent(ctx.Signer); ok {
		if taken, ok := agent.Avatars[a.Index]; ok {
			return fmt.Errorf("%w: slot %d holds %s", model.ErrAvatarExists, a.Index, taken)
		}
	}
	return nil
}

func (a CreateAvatar) Execute(ctx Context) (*ledger.State, Result, error) {
	if err := checkContext(ctx); err != nil {
		return nil, Result{}, err
	}
	addr := a.address(ctx.Signer)
	if ctx.Rehearsal {
		return rehearse(ctx, ctx.Signer, addr)
	}
	if err := a.Check(ctx, ctx.State); err != nil {
		return nil, Result{}, err
	}

	avatar, err := a.newAvatar(ctx, addr)
	if err != nil {
		return nil, Result{}, err
	}

	next := ctx.State.Clone()
	agent, ok := next.Agent(ctx.Signer)
	if !ok {
		agent = ledger.Agent{Address: ctx.Signer, Avatars: make(map[int]ledger.Address)}
	}
	agent.Avatars[a.Index] = addr
	next.SetAgent(agent)
	next.SetAvatar(addr, avatar)

	slog.Debug("avatar created",
		"agent", ctx.Signer,
		"avatar", addr,
		"index", a.Index,
		"name", a.Name)

	return next, Result{AvatarAddress: addr}, nil
}

func (a CreateAvatar) newAvatar(ctx Context, addr ledger.Address) (model.Avatar, error) {
	starter := ctx.Tables.Starter
	avatar := model.Avatar{
		Address:      addr.String(),
		AgentAddress: ctx.Signer.String(),
		Name:         a.Name,
		CharacterID:  starter.CharacterID,
		Level:        1,
		Hair:         max(a.Hair, 0),
		Lens:         max(a.Lens, 0),
		Ear:          max(a.Ear, 0),
		Tail:         max(a.Tail, 0),
		BlockIndex:   ctx.BlockIndex,
	}

	for _, rowID := range starter.Equipment {
		e, err := ctx.Tables.NewEquipment(rowID, random.NewUUID(ctx.Random), 0)
		if err != nil {
			return model.Avatar{}, fmt.Errorf("starter equipment: %w", err)
		}
		avatar.Inventory.AddEquipment(e)
	}
	for _, rowID := range starter.Costumes {
		c, err := ctx.Tables.NewCostume(rowID, random.NewUUID(ctx.Random))
		if err != nil {
			return model.Avatar{}, fmt.Errorf("starter costume: %w", err)
		}
		avatar.Inventory.AddCostume(c)
	}
	for _, sm := range starter.Materials {
		m, err := ctx.Tables.NewMaterial(sm.MaterialID, sm.Count)
		if err != nil {
			return model.Avatar{}, fmt.Errorf("starter material: %w", err)
		}
		avatar.Inventory.AddMaterial(m)
	}
	return avatar, nil
}
