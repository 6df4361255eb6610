// Package blindsig implements the RSA blind-signature primitive the coin
// protocol is built on: the bank signs a blinded digest without learning the
// message, and the unblinded result verifies as a plain signature over it.
package blindsig

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/blindcash/ecash/shared"
)

var one = big.NewInt(1)

// PublicKey is the bank's verification key. Its fields travel with a coin as
// opaque hex strings.
type PublicKey struct {
	N *big.Int
	E *big.Int
}

type PrivateKey struct {
	PublicKey
	D *big.Int
}

func GenerateKey(bits uint) (*PrivateKey, error) {
	key, err := rsa.GenerateKey(rand.Reader, int(bits))
	if err != nil {
		return nil, fmt.Errorf("key generation failure: %v", err)
	}

	return &PrivateKey{
		PublicKey: PublicKey{N: key.N, E: big.NewInt(int64(key.E))},
		D:         key.D,
	}, nil
}

// Marshal encodes the key fields for embedding in a coin.
func (pub *PublicKey) Marshal() (modulus, exponent string) {
	return pub.N.Text(16), pub.E.Text(16)
}

func ParsePublicKey(modulus, exponent string) (*PublicKey, error) {
	n, ok := new(big.Int).SetString(modulus, 16)
	if !ok || n.Sign() <= 0 {
		return nil, errors.New("malformed modulus")
	}
	e, ok := new(big.Int).SetString(exponent, 16)
	if !ok || e.Sign() <= 0 {
		return nil, errors.New("malformed exponent")
	}
	return &PublicKey{N: n, E: e}, nil
}

// digest maps a message into the RSA ring.
func digest(hasher shared.Hasher, pub *PublicKey, message []byte) *big.Int {
	m := new(big.Int).SetBytes(hasher.Sum(message))
	return m.Mod(m, pub.N)
}

// Blind hides the message digest under a fresh factor r:
// blinded = m * r^e mod N. The factor is required later to unblind, and must
// never be reused.
func Blind(hasher shared.Hasher, pub *PublicKey, message []byte) (blinded, factor []byte, err error) {
	m := digest(hasher, pub, message)

	var r *big.Int
	for {
		r, err = rand.Int(rand.Reader, pub.N)
		if err != nil {
			return nil, nil, err
		}
		if r.Sign() > 0 && new(big.Int).GCD(nil, nil, r, pub.N).Cmp(one) == 0 {
			break
		}
	}

	b := new(big.Int).Exp(r, pub.E, pub.N)
	b.Mul(b, m).Mod(b, pub.N)
	return b.Bytes(), r.Bytes(), nil
}

// Sign raises the blinded digest to the private exponent. The unblinded
// message stays hidden from the signer.
func Sign(priv *PrivateKey, blinded []byte) []byte {
	b := new(big.Int).SetBytes(blinded)
	return new(big.Int).Exp(b, priv.D, priv.N).Bytes()
}

// Unblind divides the blinding factor out of a blind signature, leaving a
// plain signature over the message digest.
func Unblind(pub *PublicKey, blindSig, factor []byte) ([]byte, error) {
	r := new(big.Int).SetBytes(factor)
	rInv := new(big.Int).ModInverse(r, pub.N)
	if rInv == nil {
		return nil, errors.New("blinding factor not invertible")
	}

	s := new(big.Int).SetBytes(blindSig)
	s.Mul(s, rInv).Mod(s, pub.N)
	return s.Bytes(), nil
}

// Verify checks sig^e == H(message) mod N.
func Verify(hasher shared.Hasher, pub *PublicKey, sig, message []byte) bool {
	if len(sig) == 0 {
		return false
	}

	s := new(big.Int).SetBytes(sig)
	if s.Cmp(pub.N) >= 0 {
		return false
	}

	m := digest(hasher, pub, message)
	return new(big.Int).Exp(s, pub.E, pub.N).Cmp(m) == 0
}
