package shared

import (
	"bytes"
	"fmt"

	xdr "github.com/nullstyle/go-xdr/xdr3"
)

// DisclosureRecord is the transcript a merchant keeps after accepting a
// coin: which side it challenged each round and the share the payer revealed
// for it. Two records for the same guid with a differing challenge bit are
// enough to reconstruct the payer's identity.
type DisclosureRecord struct {
	GUID           string
	ChallengeBits  []byte
	RevealedShares [][]byte

	// Deposit authentication. Not part of the challenged transcript.
	MerchantKey []byte
	MerchantSig []byte
}

// signedBody is the portion of a record covered by the merchant signature
// and by the deposit ledger's audit tree.
type signedBody struct {
	GUID           string
	ChallengeBits  []byte
	RevealedShares [][]byte
}

// Digest hashes the canonical serialization of the challenged transcript.
func (rec *DisclosureRecord) Digest(hasher Hasher) ([]byte, error) {
	body := signedBody{
		GUID:           rec.GUID,
		ChallengeBits:  rec.ChallengeBits,
		RevealedShares: rec.RevealedShares,
	}

	var w bytes.Buffer
	if _, err := xdr.Marshal(&w, &body); err != nil {
		return nil, fmt.Errorf("record serialization failure: %v", err)
	}
	return hasher.Sum(w.Bytes()), nil
}
