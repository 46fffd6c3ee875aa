package random

import (
	"encoding/binary"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// DeriveSeed hashes ledger-level inputs (signer, block index, tx nonce...)
// into a seed. Parts are length-prefixed so ("ab","c") and ("a","bc")
// produce different seeds.
func DeriveSeed(parts ...[]byte) int32 {
	h, _ := blake2b.New256(nil) // без ключа ошибки не бывает
	var lenBuf [4]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(p)))
		h.Write(lenBuf[:])
		h.Write(p)
	}
	sum := h.Sum(nil)
	return int32(binary.LittleEndian.Uint32(sum[:4]))
}

// Int64Bytes encodes v for DeriveSeed.
func Int64Bytes(v int64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	return b[:]
}

// NewUUID draws 16 bytes from src and stamps RFC 4122 version 4 bits on them.
// Item ids created inside an action must come from the action's source so
// that every node assigns the same ids.
func NewUUID(src Source) uuid.UUID {
	var id uuid.UUID
	copy(id[:], src.NextBytes(16))
	id[6] = (id[6] & 0x0f) | 0x40
	id[8] = (id[8] & 0x3f) | 0x80
	return id
}
