package shared

import "crypto/rand"

// Rand supplies the unpredictable bytes and bits the protocol consumes: the
// payer's share material and the merchants' challenge draws. Each side's
// draws must be unpredictable to the counterpart, which is why the source is
// injectable rather than fixed.
type Rand interface {
	Bytes(n int) ([]byte, error)
	Bit() (byte, error)
}

// CryptoRand reads from crypto/rand.
type CryptoRand struct{}

func (CryptoRand) Bytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (CryptoRand) Bit() (byte, error) {
	var b [1]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return b[0] & 1, nil
}
