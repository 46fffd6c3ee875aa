package action

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/udisondev/chronicle/internal/game/battle"
	"github.com/udisondev/chronicle/internal/ledger"
	"github.com/udisondev/chronicle/internal/ledger/mocks"
	"github.com/udisondev/chronicle/internal/model"
	"github.com/udisondev/chronicle/internal/testutil"
)

func TestHackAndSlash_Victory(t *testing.T) {
	tables := testutil.Tables()
	avatar := testutil.Avatar(avatarAddr.String())
	sword := testutil.Equipment(tables, testutil.EquipSword, 0, 1)
	avatar.Inventory.AddEquipment(sword)
	prev := stateWithAvatar(t, avatar)

	action := HackAndSlash{AvatarAddress: avatarAddr, StageID: testutil.StageDummy, Equipments: []uuid.UUID{sword.ItemID}}
	next, res, err := action.Execute(newContext(t, prev, 5))
	require.NoError(t, err)

	require.NotNil(t, res.Battle)
	assert.Equal(t, battle.OutcomeVictory, res.Battle.Outcome)

	got := mustAvatar(t, next, avatarAddr)
	assert.Equal(t, int32(testutil.StageDummy), got.ClearedStageID)
	assert.Equal(t, int64(50), got.Exp)
	assert.Equal(t, 2, got.Inventory.MaterialCount(testutil.MaterialOre))
	assert.Equal(t, 1, got.Inventory.MaterialCount(testutil.MaterialJelly))
	assert.Equal(t, int64(7), got.BlockIndex)
	require.Len(t, got.Inventory.EquippedEquipment(), 1, "equipment choice is persisted")

	orig := mustAvatar(t, prev, avatarAddr)
	assert.Zero(t, orig.ClearedStageID, "previous state untouched")
	assert.Empty(t, orig.Inventory.EquippedEquipment())
	assert.Equal(t, []ledger.Address{avatarAddr}, next.UpdatedAddresses())
}

func TestHackAndSlash_DefeatKeepsProgress(t *testing.T) {
	avatar := testutil.Avatar(avatarAddr.String())
	avatar.ClearedStageID = 2
	prev := stateWithAvatar(t, avatar)

	next, res, err := HackAndSlash{AvatarAddress: avatarAddr, StageID: testutil.StageWall}.Execute(newContext(t, prev, 1))
	require.NoError(t, err)
	assert.Equal(t, battle.OutcomeTurnLimit, res.Battle.Outcome)

	got := mustAvatar(t, next, avatarAddr)
	assert.Equal(t, int32(2), got.ClearedStageID)
	assert.Zero(t, got.Exp)
}

func TestHackAndSlash_Deterministic(t *testing.T) {
	prev := stateWithAvatar(t, testutil.Avatar(avatarAddr.String()))
	action := HackAndSlash{AvatarAddress: avatarAddr, StageID: testutil.StageDummy}

	_, a, err := action.Execute(newContext(t, prev, 99))
	require.NoError(t, err)
	_, b, err := action.Execute(newContext(t, prev, 99))
	require.NoError(t, err)

	equal, err := a.Battle.Log.Equal(b.Battle.Log)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestHackAndSlash_Errors(t *testing.T) {
	avatar := testutil.Avatar(avatarAddr.String())
	prev := stateWithAvatar(t, avatar)

	tests := []struct {
		name    string
		signer  ledger.Address
		action  HackAndSlash
		wantErr error
	}{
		{"no avatar", signer, HackAndSlash{AvatarAddress: stranger, StageID: 1}, model.ErrAvatarNotFound},
		{"not owner", stranger, HackAndSlash{AvatarAddress: avatarAddr, StageID: 1}, model.ErrAvatarNotFound},
		{"unknown stage", signer, HackAndSlash{AvatarAddress: avatarAddr, StageID: 404}, model.ErrUnknownRow},
		{"locked stage", signer, HackAndSlash{AvatarAddress: avatarAddr, StageID: testutil.StageTwo}, model.ErrStageLocked},
		{"unknown item", signer, HackAndSlash{AvatarAddress: avatarAddr, StageID: 1, Equipments: []uuid.UUID{{1}}}, model.ErrItemNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newContext(t, prev, 1)
			ctx.Signer = tt.signer
			next, _, err := tt.action.Execute(ctx)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, next)
		})
	}
}

func TestHackAndSlash_PrepareReadsOnlyTheAvatar(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockReader(ctrl)

	avatar := testutil.Avatar(avatarAddr.String())
	r.EXPECT().Avatar(avatarAddr).Return(avatar, true)

	got, err := HackAndSlash{AvatarAddress: avatarAddr, StageID: testutil.StageDummy}.Prepare(newContext(t, nil, 1), r)
	require.NoError(t, err)
	assert.Equal(t, avatar.Name, got.Name)
}

func TestHackAndSlash_Rehearsal(t *testing.T) {
	ctx := newContext(t, ledger.NewState(), 1)
	ctx.Rehearsal = true

	next, _, err := HackAndSlash{AvatarAddress: avatarAddr, StageID: 1}.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, []ledger.Address{avatarAddr}, next.UpdatedAddresses())
}
