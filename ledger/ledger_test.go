package ledger

import (
	"fmt"
	"sync"
	"testing"

	"github.com/spacemeshos/ed25519"
	"github.com/stretchr/testify/require"

	"github.com/blindcash/ecash/shared"
)

func signedRecord(t *testing.T, guid string) *shared.DisclosureRecord {
	r := require.New(t)

	rec := &shared.DisclosureRecord{
		GUID:           guid,
		ChallengeBits:  []byte{0, 1},
		RevealedShares: [][]byte{{1, 2}, {3, 4}},
	}

	pub, priv, err := ed25519.GenerateKey(nil)
	r.NoError(err)
	digest, err := rec.Digest(shared.Sha256Hasher{})
	r.NoError(err)
	rec.MerchantKey = pub
	rec.MerchantSig = ed25519.Sign(priv, digest)
	return rec
}

func TestInsertIfAbsent(t *testing.T) {
	r := require.New(t)

	l, err := NewLedger()
	r.NoError(err)

	first := signedRecord(t, "g1")
	existing, inserted, err := l.InsertIfAbsent("g1", first)
	r.NoError(err)
	r.True(inserted)
	r.Nil(existing)
	r.Equal(1, l.NumDeposits())

	// A second deposit for the same guid conflicts and surfaces the
	// original record for reconciliation.
	second := signedRecord(t, "g1")
	existing, inserted, err = l.InsertIfAbsent("g1", second)
	r.NoError(err)
	r.False(inserted)
	r.Equal(first, existing)
	r.Equal(1, l.NumDeposits())
}

func TestInsertRejectsBadSignature(t *testing.T) {
	r := require.New(t)

	l, err := NewLedger()
	r.NoError(err)

	rec := signedRecord(t, "g1")
	rec.MerchantSig[0] ^= 1
	_, _, err = l.InsertIfAbsent("g1", rec)
	r.Equal(shared.ErrInvalidSignature, err)

	rec = signedRecord(t, "g2")
	rec.MerchantKey = nil
	_, _, err = l.InsertIfAbsent("g2", rec)
	r.Equal(shared.ErrInvalidSignature, err)

	// Tampering with the transcript invalidates the signature too.
	rec = signedRecord(t, "g3")
	rec.ChallengeBits[0] ^= 1
	_, _, err = l.InsertIfAbsent("g3", rec)
	r.Equal(shared.ErrInvalidSignature, err)

	r.Equal(0, l.NumDeposits())
}

func TestInsertGuidMismatch(t *testing.T) {
	r := require.New(t)

	l, err := NewLedger()
	r.NoError(err)

	_, _, err = l.InsertIfAbsent("g1", signedRecord(t, "g2"))
	r.Error(err)
}

func TestAuditRoot(t *testing.T) {
	r := require.New(t)

	l, err := NewLedger()
	r.NoError(err)

	_, _, err = l.InsertIfAbsent("g1", signedRecord(t, "g1"))
	r.NoError(err)
	root1 := l.Root()

	_, _, err = l.InsertIfAbsent("g2", signedRecord(t, "g2"))
	r.NoError(err)
	root2 := l.Root()

	r.NotEqual(root1, root2)
}

func TestInsertConcurrent(t *testing.T) {
	r := require.New(t)

	l, err := NewLedger()
	r.NoError(err)

	// Many goroutines race to deposit records for a small set of guids;
	// exactly one insert per guid may win.
	const (
		numGuids      = 8
		numDepositors = 4
	)

	records := make([][]*shared.DisclosureRecord, numDepositors)
	for d := range records {
		records[d] = make([]*shared.DisclosureRecord, numGuids)
		for g := range records[d] {
			records[d][g] = signedRecord(t, fmt.Sprintf("g%d", g))
		}
	}

	var wg sync.WaitGroup
	insertions := make(chan string, numGuids*numDepositors)
	for d := 0; d < numDepositors; d++ {
		wg.Add(1)
		go func(recs []*shared.DisclosureRecord) {
			defer wg.Done()
			for _, rec := range recs {
				_, inserted, err := l.InsertIfAbsent(rec.GUID, rec)
				if err == nil && inserted {
					insertions <- rec.GUID
				}
			}
		}(records[d])
	}
	wg.Wait()
	close(insertions)

	winners := make(map[string]int)
	for guid := range insertions {
		winners[guid]++
	}
	r.Equal(numGuids, len(winners))
	for guid, count := range winners {
		r.Equal(1, count, "guid %s", guid)
	}
	r.Equal(numGuids, l.NumDeposits())
}
