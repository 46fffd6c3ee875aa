package action

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/udisondev/chronicle/internal/ledger"
	"github.com/udisondev/chronicle/internal/ledger/mocks"
	"github.com/udisondev/chronicle/internal/model"
	"github.com/udisondev/chronicle/internal/testutil"
)

// enhancementState: аватар после стадии 1, два меча заданного уровня
// и balance золота у подписанта.
func enhancementState(t *testing.T, level int32, balance int64) (*ledger.State, model.Equipment, model.Equipment) {
	t.Helper()
	tables := testutil.Tables()
	avatar := testutil.Avatar(avatarAddr.String())
	avatar.ClearedStageID = 1
	target := testutil.Equipment(tables, testutil.EquipSword, level, 1)
	material := testutil.Equipment(tables, testutil.EquipSword, level, 2)
	avatar.Inventory.AddEquipment(target)
	avatar.Inventory.AddEquipment(material)

	s := ledger.NewState()
	s.SetAvatar(avatarAddr, avatar)
	require.NoError(t, s.Mint(signer, ledger.Gold, gold(balance)))
	s.ResetUpdates()
	return s, target, material
}

func TestItemEnhancement_Execute(t *testing.T) {
	tests := []struct {
		name        string
		level       int32
		wantLevel   int32
		wantBalance int64
	}{
		{"level 0 always succeeds", 0, 1, 0},
		{"level 3 never succeeds and costs nothing", 3, 3, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev, target, material := enhancementState(t, tt.level, 1000)

			action := ItemEnhancement{AvatarAddress: avatarAddr, ItemID: target.ItemID, MaterialIDs: []uuid.UUID{material.ItemID}}
			next, res, err := action.Execute(newContext(t, prev, 3))
			require.NoError(t, err)
			require.NotNil(t, res.Enhancement)

			got := mustAvatar(t, next, avatarAddr)
			enhanced, ok := got.Inventory.FindEquipment(target.ItemID)
			require.True(t, ok, "item id unchanged")
			assert.Equal(t, tt.wantLevel, enhanced.Level)
			_, ok = got.Inventory.FindEquipment(material.ItemID)
			assert.False(t, ok, "material consumed")

			assert.True(t, gold(tt.wantBalance).Equal(next.Balance(signer, ledger.Gold)))
			assert.True(t, gold(1000-tt.wantBalance).Equal(next.Balance(blacksmith, ledger.Gold)))

			orig := mustAvatar(t, prev, avatarAddr)
			assert.Len(t, orig.Inventory.Equipment, 2, "previous state untouched")
			assert.True(t, gold(1000).Equal(prev.Balance(signer, ledger.Gold)))
		})
	}
}

func TestItemEnhancement_Errors(t *testing.T) {
	prev, target, material := enhancementState(t, 0, 999)

	locked := prev.Clone()
	avatar := mustAvatar(t, locked, avatarAddr)
	avatar.ClearedStageID = 0
	locked.SetAvatar(avatarAddr, avatar)

	tests := []struct {
		name    string
		state   *ledger.State
		action  ItemEnhancement
		wantErr error
	}{
		{"no avatar", prev, ItemEnhancement{AvatarAddress: stranger}, model.ErrAvatarNotFound},
		{"stage gate", locked, ItemEnhancement{AvatarAddress: avatarAddr, ItemID: target.ItemID, MaterialIDs: []uuid.UUID{material.ItemID}}, model.ErrStageLocked},
		{"unknown target", prev, ItemEnhancement{AvatarAddress: avatarAddr, ItemID: uuid.UUID{9}, MaterialIDs: []uuid.UUID{material.ItemID}}, model.ErrItemNotFound},
		{"unknown material", prev, ItemEnhancement{AvatarAddress: avatarAddr, ItemID: target.ItemID, MaterialIDs: []uuid.UUID{{9}}}, model.ErrItemNotFound},
		{"target as material", prev, ItemEnhancement{AvatarAddress: avatarAddr, ItemID: target.ItemID, MaterialIDs: []uuid.UUID{target.ItemID}}, model.ErrInvalidMaterial},
		{"poor", prev, ItemEnhancement{AvatarAddress: avatarAddr, ItemID: target.ItemID, MaterialIDs: []uuid.UUID{material.ItemID}}, model.ErrInsufficientFunds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, _, err := tt.action.Execute(newContext(t, tt.state, 1))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, next)
		})
	}

	assert.Len(t, mustAvatar(t, prev, avatarAddr).Inventory.Equipment, 2)
}

func TestItemEnhancement_PrepareReadsBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockReader(ctrl)

	tables := testutil.Tables()
	avatar := testutil.Avatar(avatarAddr.String())
	avatar.ClearedStageID = 1
	target := testutil.Equipment(tables, testutil.EquipSword, 0, 1)
	material := testutil.Equipment(tables, testutil.EquipSword, 0, 2)
	avatar.Inventory.AddEquipment(target)
	avatar.Inventory.AddEquipment(material)

	gomock.InOrder(
		r.EXPECT().Avatar(avatarAddr).Return(avatar, true),
		r.EXPECT().Balance(signer, ledger.Gold).Return(gold(42)),
	)

	action := ItemEnhancement{AvatarAddress: avatarAddr, ItemID: target.ItemID, MaterialIDs: []uuid.UUID{material.ItemID}}
	_, req, err := action.Prepare(newContext(t, nil, 1), r)
	require.NoError(t, err)

	assert.Equal(t, target.ItemID, req.Target.ItemID)
	require.Len(t, req.Materials, 1)
	assert.Equal(t, signer, req.Payer)
	assert.True(t, gold(42).Equal(req.Balance))
}

func TestItemEnhancement_Rehearsal(t *testing.T) {
	prev, target, material := enhancementState(t, 0, 1000)
	action := ItemEnhancement{AvatarAddress: avatarAddr, ItemID: target.ItemID, MaterialIDs: []uuid.UUID{material.ItemID}}

	ctx := newContext(t, ledger.NewState(), 1)
	ctx.Rehearsal = true
	rehearsed, _, err := action.Execute(ctx)
	require.NoError(t, err)

	executed, _, err := action.Execute(newContext(t, prev, 1))
	require.NoError(t, err)

	assert.Equal(t, executed.UpdatedAddresses(), rehearsed.UpdatedAddresses())
	assert.ElementsMatch(t, []ledger.Address{signer, avatarAddr, blacksmith}, rehearsed.UpdatedAddresses())
}
