package shared

import "github.com/spacemeshos/sha256-simd"

// Hasher is the commitment hash. Collision resistance is what binds a share
// to the coin's signed form without revealing it.
type Hasher interface {
	Sum(data []byte) []byte
}

type Sha256Hasher struct{}

func (Sha256Hasher) Sum(data []byte) []byte {
	res := sha256.Sum256(data)
	return res[:]
}
