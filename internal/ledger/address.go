// Package ledger is the external state the core reads from and returns
// updated copies of: avatars, agents and fungible balances.
//
// The core never holds a ledger across runs. Actions receive a State,
// Clone it and return the clone; the input is never mutated.
package ledger

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/udisondev/chronicle/internal/model"
)

// AddressLength is the size of an address in bytes.
const AddressLength = 20

// Address identifies an agent, an avatar or a system account.
type Address [AddressLength]byte

// ParseAddress parses a hex address with an optional 0x prefix.
func ParseAddress(s string) (Address, error) {
	var a Address
	raw := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(raw) != AddressLength*2 {
		return a, fmt.Errorf("%w: address %q must be %d hex chars", model.ErrValidation, s, AddressLength*2)
	}
	if _, err := hex.Decode(a[:], []byte(raw)); err != nil {
		return a, fmt.Errorf("%w: address %q: %v", model.ErrValidation, s, err)
	}
	return a, nil
}

// MustParseAddress is ParseAddress for constants and tests.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String returns the lowercase 0x-prefixed hex form.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// IsZero reports whether a is the zero address.
func (a Address) IsZero() bool { return a == Address{} }

// Derive returns a child address: the first 20 bytes of
// BLAKE2b-256 keyed with a over key. Avatar addresses are derived from
// the agent address this way.
func (a Address) Derive(key string) Address {
	h, err := blake2b.New256(a[:])
	if err != nil {
		// ключ 20 байт всегда допустим
		panic(err)
	}
	h.Write([]byte(key))
	var out Address
	copy(out[:], h.Sum(nil))
	return out
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(b []byte) error {
	parsed, err := ParseAddress(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
