package commitment

import (
	"github.com/blindcash/ecash/shared"
)

type (
	Rand   = shared.Rand
	Hasher = shared.Hasher
)

// Shares holds the k secret-shared encodings of an owner identity together
// with their hash commitments. Only the hashes enter the coin's signed form;
// the shares themselves stay with the payer until challenged.
type Shares struct {
	Left  [][]byte
	Right [][]byte

	LeftHashes  [][]byte
	RightHashes [][]byte
}

// Build draws one random share per round and derives its complement, so that
// Left[i] XOR Right[i] equals the fixed-width identity encoding for every
// round. Either share alone is indistinguishable from random.
func Build(rnd Rand, hasher Hasher, owner string, numRounds, shareSize uint) (*Shares, error) {
	identity, err := shared.EncodeIdentity(owner, int(shareSize))
	if err != nil {
		return nil, err
	}

	s := &Shares{
		Left:        make([][]byte, numRounds),
		Right:       make([][]byte, numRounds),
		LeftHashes:  make([][]byte, numRounds),
		RightHashes: make([][]byte, numRounds),
	}

	for i := uint(0); i < numRounds; i++ {
		left, err := rnd.Bytes(int(shareSize))
		if err != nil {
			return nil, err
		}

		s.Left[i] = left
		s.Right[i] = shared.Xor(left, identity)
		s.LeftHashes[i] = hasher.Sum(s.Left[i])
		s.RightHashes[i] = hasher.Sum(s.Right[i])
	}

	return s, nil
}
