package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/udisondev/chronicle/internal/ledger"
	"github.com/udisondev/chronicle/internal/ledger/mocks"
	"github.com/udisondev/chronicle/internal/model"
	"github.com/udisondev/chronicle/internal/testutil"
)

func TestCreateAvatar_Execute(t *testing.T) {
	prev := ledger.NewState()
	ctx := newContext(t, prev, 1)

	action := CreateAvatar{Index: 0, Name: "hero_1", Hair: 2, Lens: -1, Ear: 3, Tail: -9}
	next, res, err := action.Execute(ctx)
	require.NoError(t, err)

	addr := DeriveAvatarAddress(signer, 0)
	assert.Equal(t, addr, res.AvatarAddress)

	avatar := mustAvatar(t, next, addr)
	assert.Equal(t, "hero_1", avatar.Name)
	assert.Equal(t, signer.String(), avatar.AgentAddress)
	assert.Equal(t, int32(testutil.CharPlayer), avatar.CharacterID)
	assert.Equal(t, int32(1), avatar.Level)
	assert.Equal(t, int64(7), avatar.BlockIndex)
	assert.Equal(t, []int32{2, 0, 3, 0}, []int32{avatar.Hair, avatar.Lens, avatar.Ear, avatar.Tail})

	require.Len(t, avatar.Inventory.Equipment, 3)
	require.Len(t, avatar.Inventory.Costumes, 1)
	assert.Equal(t, 3, avatar.Inventory.MaterialCount(testutil.MaterialOre))
	ids := map[string]bool{}
	for _, e := range avatar.Inventory.Equipment {
		ids[e.ItemID.String()] = true
		assert.Zero(t, e.Level)
		assert.False(t, e.Equipped)
	}
	assert.Len(t, ids, 3, "item ids are unique")

	agent, ok := next.Agent(signer)
	require.True(t, ok)
	assert.Equal(t, map[int]ledger.Address{0: addr}, agent.Avatars)

	_, ok = prev.Avatar(addr)
	assert.False(t, ok, "previous state untouched")
}

func TestCreateAvatar_Deterministic(t *testing.T) {
	action := CreateAvatar{Index: 1, Name: "twin"}

	a, _, err := action.Execute(newContext(t, ledger.NewState(), 42))
	require.NoError(t, err)
	b, _, err := action.Execute(newContext(t, ledger.NewState(), 42))
	require.NoError(t, err)

	addr := DeriveAvatarAddress(signer, 1)
	assert.Equal(t, mustAvatar(t, a, addr), mustAvatar(t, b, addr))
}

func TestCreateAvatar_Errors(t *testing.T) {
	withAvatar, _, err := CreateAvatar{Index: 0, Name: "first"}.Execute(newContext(t, ledger.NewState(), 1))
	require.NoError(t, err)

	tests := []struct {
		name    string
		state   *ledger.State
		action  CreateAvatar
		wantErr error
	}{
		{"empty name", ledger.NewState(), CreateAvatar{Name: ""}, model.ErrInvalidName},
		{"bad chars", ledger.NewState(), CreateAvatar{Name: "hero!"}, model.ErrInvalidName},
		{"too long", ledger.NewState(), CreateAvatar{Name: "abcdefghijklmnopq"}, model.ErrInvalidName},
		{"negative index", ledger.NewState(), CreateAvatar{Index: -1, Name: "hero"}, model.ErrValidation},
		{"index out of range", ledger.NewState(), CreateAvatar{Index: ledger.MaxAvatars, Name: "hero"}, model.ErrValidation},
		{"avatar exists", withAvatar, CreateAvatar{Index: 0, Name: "again"}, model.ErrAvatarExists},
		{"slot taken", withAvatar, CreateAvatar{AvatarAddress: stranger, Index: 0, Name: "again"}, model.ErrAvatarExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, _, err := tt.action.Execute(newContext(t, tt.state, 1))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, next)
		})
	}
}

func TestCreateAvatar_CheckReadsLedger(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockReader(ctrl)

	addr := DeriveAvatarAddress(signer, 2)
	r.EXPECT().Avatar(addr).Return(model.Avatar{}, false)
	r.EXPECT().Agent(signer).Return(ledger.Agent{
		Address: signer,
		Avatars: map[int]ledger.Address{2: stranger},
	}, true)

	err := CreateAvatar{Index: 2, Name: "hero"}.Check(newContext(t, nil, 1), r)
	assert.ErrorIs(t, err, model.ErrAvatarExists)
}

func TestCreateAvatar_CheckRejectsNameBeforeReading(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockReader(ctrl) // вызовов не ожидается

	err := CreateAvatar{Name: "x"}.Check(newContext(t, nil, 1), r)
	assert.ErrorIs(t, err, model.ErrInvalidName)
}

func TestCreateAvatar_Rehearsal(t *testing.T) {
	action := CreateAvatar{Index: 0, Name: "hero"}

	ctx := newContext(t, ledger.NewState(), 1)
	ctx.Rehearsal = true
	ctx.Random = nil
	rehearsed, _, err := action.Execute(ctx)
	require.NoError(t, err)

	executed, _, err := action.Execute(newContext(t, ledger.NewState(), 1))
	require.NoError(t, err)

	assert.Equal(t, executed.UpdatedAddresses(), rehearsed.UpdatedAddresses())
	_, ok := rehearsed.Avatar(DeriveAvatarAddress(signer, 0))
	assert.False(t, ok, "rehearsal writes nothing")
}
