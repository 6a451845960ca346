// Package bank stands in for the card-issuing side of processing. The only
// capability the gateway needs from it is a yes/no on whether the card hash
// asserted at transaction creation still matches the customer's card on
// file.
package bank

import "crypto/subtle"

// CardVerifier approves or rejects a claimed card hash against the stored
// reference hash.
type CardVerifier interface {
	Verify(claimedHash, referenceHash string) bool
}

// HashVerifier compares the two opaque hashes in constant time. The hashes
// function as authorization token-equivalents, so a timing-dependent compare
// would leak match length.
type HashVerifier struct{}

func NewHashVerifier() HashVerifier {
	return HashVerifier{}
}

func (HashVerifier) Verify(claimedHash, referenceHash string) bool {
	if len(claimedHash) != len(referenceHash) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(claimedHash), []byte(referenceHash)) == 1
}

// StaticVerifier always returns its configured result. Test use only.
type StaticVerifier struct {
	Result bool
}

func (v StaticVerifier) Verify(_, _ string) bool {
	return v.Result
}
