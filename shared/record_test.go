package shared

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordDigest(t *testing.T) {
	r := require.New(t)

	rec := &DisclosureRecord{
		GUID:           "c0ffee",
		ChallengeBits:  []byte{0, 1, 0},
		RevealedShares: [][]byte{{1, 2}, {3, 4}, {5, 6}},
	}

	d1, err := rec.Digest(Sha256Hasher{})
	r.NoError(err)
	r.Equal(32, len(d1))

	// Deterministic, and independent of the authentication fields.
	rec.MerchantKey = []byte("key")
	rec.MerchantSig = []byte("sig")
	d2, err := rec.Digest(Sha256Hasher{})
	r.NoError(err)
	r.Equal(d1, d2)

	// Sensitive to the challenged transcript.
	rec.ChallengeBits[2] = 1
	d3, err := rec.Digest(Sha256Hasher{})
	r.NoError(err)
	r.NotEqual(d1, d3)
}
