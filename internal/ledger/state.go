package ledger

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/udisondev/chronicle/internal/model"
)

// MaxAvatars is the number of avatar slots per agent.
const MaxAvatars = 3

// Agent owns up to MaxAvatars avatars, one per slot index.
type Agent struct {
	Address Address
	Avatars map[int]Address
}

func (a Agent) clone() Agent {
	a.Avatars = maps.Clone(a.Avatars)
	return a
}

//go:generate go tool mockgen -destination=./mocks/reader_mock.go -package=mocks . Reader

// Reader is the read side of the ledger used by actions.
type Reader interface {
	Agent(addr Address) (Agent, bool)
	Avatar(addr Address) (model.Avatar, bool)
	Balance(addr Address, c Currency) decimal.Decimal
}

type balanceKey struct {
	addr   Address
	ticker string
}

// State is an in-memory ledger snapshot.
//
// Values are stored as private copies: getters return clones and setters
// store clones, so two States never share mutable item data. Clone copies
// only the maps.
type State struct {
	agents   map[Address]Agent
	avatars  map[Address]model.Avatar
	balances map[balanceKey]decimal.Decimal
	updated  map[Address]struct{}
}

var _ Reader = (*State)(nil)

// NewState returns an empty ledger.
func NewState() *State {
	return &State{
		agents:   make(map[Address]Agent),
		avatars:  make(map[Address]model.Avatar),
		balances: make(map[balanceKey]decimal.Decimal),
		updated:  make(map[Address]struct{}),
	}
}

// Clone returns an independent copy carrying the same update set.
func (s *State) Clone() *State {
	return &State{
		agents:   maps.Clone(s.agents),
		avatars:  maps.Clone(s.avatars),
		balances: maps.Clone(s.balances),
		updated:  maps.Clone(s.updated),
	}
}

func (s *State) Agent(addr Address) (Agent, bool) {
	a, ok := s.agents[addr]
	if !ok {
		return Agent{}, false
	}
	return a.clone(), true
}

func (s *State) SetAgent(a Agent) {
	if a.Avatars == nil {
		a.Avatars = make(map[int]Address)
	}
	s.agents[a.Address] = a.clone()
	s.MarkUpdated(a.Address)
}

func (s *State) Avatar(addr Address) (model.Avatar, bool) {
	a, ok := s.avatars[addr]
	if !ok {
		return model.Avatar{}, false
	}
	return a.Clone(), true
}

// SetAvatar stores a copy of a under addr.
func (s *State) SetAvatar(addr Address, a model.Avatar) {
	s.avatars[addr] = a.Clone()
	s.MarkUpdated(addr)
}

// Balance returns the balance of addr in c; unknown accounts hold zero.
func (s *State) Balance(addr Address, c Currency) decimal.Decimal {
	b, ok := s.balances[balanceKey{addr, c.Ticker}]
	if !ok {
		return decimal.Zero
	}
	return b
}

// Mint credits amount to addr out of thin air. Used for genesis and tests.
func (s *State) Mint(addr Address, c Currency, amount decimal.Decimal) error {
	amount = c.Normalize(amount)
	if amount.IsNegative() {
		return fmt.Errorf("%w: negative mint %s %s", model.ErrValidation, amount, c)
	}
	key := balanceKey{addr, c.Ticker}
	s.balances[key] = s.Balance(addr, c).Add(amount)
	s.MarkUpdated(addr)
	return nil
}

// Transfer moves amount from one account to another.
// A zero transfer is recorded as a touch of both accounts.
func (s *State) Transfer(from, to Address, c Currency, amount decimal.Decimal) error {
	amount = c.Normalize(amount)
	if amount.IsNegative() {
		return fmt.Errorf("%w: negative transfer %s %s", model.ErrValidation, amount, c)
	}
	balance := s.Balance(from, c)
	if balance.LessThan(amount) {
		return fmt.Errorf("%w: %s holds %s %s, needs %s", model.ErrInsufficientFunds, from, balance, c, amount)
	}
	s.balances[balanceKey{from, c.Ticker}] = balance.Sub(amount)
	s.balances[balanceKey{to, c.Ticker}] = s.Balance(to, c).Add(amount)
	s.MarkUpdated(from, to)
	return nil
}

// MarkUpdated records addresses as touched without changing them.
// Rehearsals use it to report what an action would write.
func (s *State) MarkUpdated(addrs ...Address) {
	for _, a := range addrs {
		s.updated[a] = struct{}{}
	}
}

// UpdatedAddresses returns the touched addresses in byte order.
func (s *State) UpdatedAddresses() []Address {
	out := slices.Collect(maps.Keys(s.updated))
	slices.SortFunc(out, func(a, b Address) int { return bytes.Compare(a[:], b[:]) })
	return out
}

// ResetUpdates clears the touched set, typically before running an action.
func (s *State) ResetUpdates() {
	clear(s.updated)
}
