// Package reconciliation compares two disclosure records deposited under the
// same coin guid and attributes the double-spend.
package reconciliation

import (
	"bytes"

	"github.com/blindcash/ecash/shared"
)

type DisclosureRecord = shared.DisclosureRecord

// Verdict classifies the comparison of two records for the same guid.
type Verdict int

const (
	// Inconclusive: double-spending is suspected but the records cannot
	// attribute it. Either every round was challenged on the same side, or
	// the transcripts are internally inconsistent.
	Inconclusive Verdict = iota

	// MerchantFault: the two records are identical transcripts. The payer
	// spent once; one merchant deposited its own transcript twice, or two
	// merchants colluded on one acceptance.
	MerchantFault

	// PayerIdentified: an opposite-side round recovered the owner identity
	// from the XOR of its revealed shares.
	PayerIdentified
)

func (v Verdict) String() string {
	switch v {
	case MerchantFault:
		return "MerchantFault"
	case PayerIdentified:
		return "PayerIdentified"
	default:
		return "Inconclusive"
	}
}

// Outcome is the reconciliation result. It is never an error: even a
// violated precondition yields an Inconclusive outcome.
type Outcome struct {
	Verdict  Verdict
	Identity string

	// Round is the opposite-bit round that identified the payer, or -1.
	Round int
}

// Reconcile compares two records deposited for the same guid. The first
// round the two merchants challenged on opposite sides reveals the payer:
// the XOR of its revealed shares reproduces the marked identity encoding the
// commitments were built over.
func Reconcile(guid string, a, b *DisclosureRecord) Outcome {
	if a == nil || b == nil || a.GUID != guid || b.GUID != guid ||
		len(a.ChallengeBits) != len(b.ChallengeBits) ||
		len(a.RevealedShares) != len(a.ChallengeBits) ||
		len(b.RevealedShares) != len(b.ChallengeBits) {
		return Outcome{Verdict: Inconclusive, Round: -1}
	}

	identical := true
	for i := range a.ChallengeBits {
		if a.ChallengeBits[i] != b.ChallengeBits[i] {
			identical = false

			x := shared.Xor(a.RevealedShares[i], b.RevealedShares[i])
			if owner, ok := shared.DecodeIdentity(x); ok {
				return Outcome{Verdict: PayerIdentified, Identity: owner, Round: i}
			}
			// Opposite sides that don't recombine into a marked
			// identity: inconsistent commitments, keep scanning.
			continue
		}

		if !bytes.Equal(a.RevealedShares[i], b.RevealedShares[i]) {
			// Same side challenged, different preimages revealed. The
			// protocol never produces this for one honest coin.
			identical = false
		}
	}

	if identical {
		return Outcome{Verdict: MerchantFault, Round: -1}
	}
	return Outcome{Verdict: Inconclusive, Round: -1}
}
