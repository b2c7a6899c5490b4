package addressing

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Address is a 32-byte deterministic identifier derived from a seed list
type Address [32]byte

// Well-known namespaces. Every derived entity hangs off one of these so
// two entities with the same seeds in different roles never collide.
const (
	NamespaceAuction          = "auction"
	NamespaceExtended         = "auction-extended"
	NamespaceBidderPot        = "bidder-pot"
	NamespaceBidderMeta       = "bidder-meta"
	NamespaceSettlement       = "settlement"
	NamespacePaymentAccount   = "payment"
	NamespaceRedemptionTicket = "redemption"
	NamespaceAuthorityReturn  = "authority-return"
	NamespaceStore            = "store"
	NamespaceWhitelist        = "whitelist"
)

// Derive computes the address for a namespace plus ordered seed parts.
// The same inputs always yield the same address on every node, which is
// what lets independently submitted events agree on entity identity.
func Derive(namespace string, parts ...[]byte) Address {
	h := sha256.New()
	h.Write([]byte(namespace))
	for _, p := range parts {
		// Length prefix prevents seed-boundary ambiguity
		h.Write([]byte{byte(len(p))})
		h.Write(p)
	}
	var addr Address
	copy(addr[:], h.Sum(nil))
	return addr
}

func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// Parse decodes a 64-character hex address
func Parse(s string) (Address, error) {
	var addr Address
	b, err := hex.DecodeString(s)
	if err != nil {
		return addr, fmt.Errorf("invalid address %q: %w", s, err)
	}
	if len(b) != len(addr) {
		return addr, fmt.Errorf("invalid address length %d, want %d", len(b), len(addr))
	}
	copy(addr[:], b)
	return addr, nil
}

// MustParse is Parse for known-good constants; it panics on error
func MustParse(s string) Address {
	addr, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("FATAL: bad address literal: %v", err))
	}
	return addr
}
