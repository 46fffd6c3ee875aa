// Package action applies player actions to the ledger.
//
// Every action follows the same contract: read the previous state, check
// everything, then write to a clone. A rejected action returns the error
// and no state; the previous state is never modified. In rehearsal mode an
// action writes nothing and only marks the addresses it would touch.
package action

import (
	"fmt"

	"github.com/udisondev/chronicle/internal/config"
	"github.com/udisondev/chronicle/internal/data"
	"github.com/udisondev/chronicle/internal/game/battle"
	"github.com/udisondev/chronicle/internal/game/enchant"
	"github.com/udisondev/chronicle/internal/ledger"
	"github.com/udisondev/chronicle/internal/model"
	"github.com/udisondev/chronicle/internal/random"
)

// Context is the environment of one execution.
type Context struct {
	State      *ledger.State
	Signer     ledger.Address
	BlockIndex int64
	Random     random.Source
	Tables     *data.Tables
	Config     config.Simulator
	Rehearsal  bool
}

// Result carries what an action produced besides the new state.
// Only the field of the executed action is set.
type Result struct {
	AvatarAddress ledger.Address
	Battle        *battle.Result
	Enhancement   *enchant.Outcome
}

// Action is a ledger transition.
type Action interface {
	Execute(ctx Context) (*ledger.State, Result, error)
}

// rehearse возвращает копию состояния с addrs, помеченными как изменённые.
func rehearse(ctx Context, addrs ...ledger.Address) (*ledger.State, Result, error) {
	next := ctx.State.Clone()
	next.MarkUpdated(addrs...)
	return next, Result{}, nil
}

func checkContext(ctx Context) error {
	switch {
	case ctx.State == nil:
		return fmt.Errorf("%w: nil state", model.ErrValidation)
	case ctx.Tables == nil:
		return fmt.Errorf("%w: nil tables", model.ErrValidation)
	case ctx.Random == nil && !ctx.Rehearsal:
		return fmt.Errorf("%w: nil random source", model.ErrValidation)
	}
	return nil
}

// ownedAvatar загружает аватар по addr и проверяет, что им владеет signer.
func ownedAvatar(r ledger.Reader, signer, addr ledger.Address) (model.Avatar, error) {
	avatar, ok := r.Avatar(addr)
	if !ok {
		return model.Avatar{}, fmt.Errorf("%w: %s", model.ErrAvatarNotFound, addr)
	}
	if avatar.AgentAddress != signer.String() {
		return model.Avatar{}, fmt.Errorf("%w: %s is not owned by %s", model.ErrAvatarNotFound, addr, signer)
	}
	return avatar, nil
}
