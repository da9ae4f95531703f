// Package addr validates and formats account addresses and transaction
// hashes. Every identifier that crosses the chain-service boundary goes
// through these checks before any RPC call is issued.
package addr

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// ErrInvalidAddress is returned for strings that are not well-formed addresses.
var ErrInvalidAddress = errors.New("invalid address")

// ErrInvalidTxHash is returned for strings that are not well-formed transaction hashes.
var ErrInvalidTxHash = errors.New("invalid transaction hash")

// IsValidAddress reports whether s is a 0x-prefixed 40-hex-char account
// address. All-lowercase and all-uppercase inputs pass on format alone;
// mixed-case inputs must additionally match their EIP-55 checksum.
func IsValidAddress(s string) bool {
	if !strings.HasPrefix(s, "0x") {
		return false
	}
	body := s[2:]
	if len(body) != 40 {
		return false
	}
	if _, err := hex.DecodeString(body); err != nil {
		return false
	}

	lower := strings.ToLower(body)
	upper := strings.ToUpper(body)
	if body == lower || body == upper {
		return true
	}
	return s == Checksum(s)
}

// IsValidTxHash reports whether s is a 0x-prefixed 64-hex-char transaction hash.
func IsValidTxHash(s string) bool {
	if !strings.HasPrefix(s, "0x") {
		return false
	}
	body := s[2:]
	if len(body) != 64 {
		return false
	}
	_, err := hex.DecodeString(body)
	return err == nil
}

// Checksum converts an address to its EIP-55 mixed-case checksum form.
// The input may carry any casing; a malformed address is returned unchanged.
func Checksum(s string) string {
	clean := strings.ToLower(strings.TrimPrefix(s, "0x"))
	if len(clean) != 40 {
		return s
	}
	if _, err := hex.DecodeString(clean); err != nil {
		return s
	}

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(clean))
	hash := hex.EncodeToString(h.Sum(nil))

	var b strings.Builder
	b.WriteString("0x")
	for i, c := range clean {
		if c >= 'a' && c <= 'f' && hash[i] >= '8' {
			b.WriteByte(byte(c - 32))
		} else {
			b.WriteByte(byte(c))
		}
	}
	return b.String()
}

// Shorten renders an address as "0x1234…abcd" for logs and UI surfaces.
func Shorten(s string) (string, error) {
	if !IsValidAddress(s) {
		return "", fmt.Errorf("%w: %s", ErrInvalidAddress, s)
	}
	return s[:6] + "…" + s[len(s)-4:], nil
}
