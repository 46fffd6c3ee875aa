package action

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/chronicle/internal/config"
	"github.com/udisondev/chronicle/internal/ledger"
	"github.com/udisondev/chronicle/internal/model"
	"github.com/udisondev/chronicle/internal/random"
	"github.com/udisondev/chronicle/internal/testutil"
)

var (
	// агент testutil.Avatar
	signer     = ledger.MustParseAddress("0x0000000000000000000000000000000000000a11")
	avatarAddr = ledger.MustParseAddress("0x00000000000000000000000000000000000000a1")
	stranger   = ledger.MustParseAddress("0x00000000000000000000000000000000000000ff")
	blacksmith = ledger.MustParseAddress(config.DefaultBeneficiary)
)

func newContext(t *testing.T, state *ledger.State, seed int32) Context {
	t.Helper()
	return Context{
		State:      state,
		Signer:     signer,
		BlockIndex: 7,
		Random:     random.New(seed),
		Tables:     testutil.Tables(),
		Config:     config.Default(),
	}
}

// stateWithAvatar кладёт avatar по avatarAddr и сбрасывает набор изменений.
func stateWithAvatar(t *testing.T, avatar model.Avatar) *ledger.State {
	t.Helper()
	s := ledger.NewState()
	s.SetAvatar(avatarAddr, avatar)
	s.ResetUpdates()
	return s
}

func gold(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func mustAvatar(t *testing.T, s *ledger.State, addr ledger.Address) model.Avatar {
	t.Helper()
	a, ok := s.Avatar(addr)
	require.True(t, ok, "avatar %s", addr)
	return a
}
