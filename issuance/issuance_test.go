package issuance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blindcash/ecash/blindsig"
	"github.com/blindcash/ecash/coin"
	"github.com/blindcash/ecash/config"
	"github.com/blindcash/ecash/shared"
)

var cfg = func() *config.Config {
	cfg := config.DefaultConfig()
	cfg.NumRounds = 4
	cfg.KeyBits = 512 // fast test keys
	return cfg
}()

func newTestCoin(t *testing.T) *coin.Coin {
	c, err := coin.New(cfg, shared.CryptoRand{}, shared.Sha256Hasher{}, "alice", 20)
	require.NoError(t, err)
	return c
}

func TestIssuance(t *testing.T) {
	r := require.New(t)

	bank, err := NewBank(cfg)
	r.NoError(err)
	requester, err := NewRequester(cfg)
	r.NoError(err)

	c := newTestCoin(t)
	canonical := c.CanonicalForm()

	blinded, err := requester.RequestSignature(c, bank.PublicKey())
	r.NoError(err)
	r.Equal(blinded, c.BlindedForm)

	sealed, err := requester.Finalize(c, bank.Issue(blinded))
	r.NoError(err)
	r.True(sealed.Sealed())

	// Sealing must not have touched the canonical form.
	r.Equal(canonical, sealed.CanonicalForm())

	// The attached signature verifies against the embedded bank key.
	pub, err := blindsig.ParsePublicKey(sealed.BankModulus, sealed.BankExponent)
	r.NoError(err)
	r.True(blindsig.Verify(shared.Sha256Hasher{}, pub, sealed.Signature, []byte(canonical)))
}

func TestRequestSignatureSingleUse(t *testing.T) {
	r := require.New(t)

	bank, err := NewBank(cfg)
	r.NoError(err)
	requester, err := NewRequester(cfg)
	r.NoError(err)

	c := newTestCoin(t)
	_, err = requester.RequestSignature(c, bank.PublicKey())
	r.NoError(err)

	_, err = requester.RequestSignature(c, bank.PublicKey())
	r.Equal(shared.ErrAlreadyBlinded, err)
}

func TestFinalizeWithoutRequest(t *testing.T) {
	r := require.New(t)

	requester, err := NewRequester(cfg)
	r.NoError(err)

	_, err = requester.Finalize(newTestCoin(t), []byte{1, 2, 3})
	r.Equal(shared.ErrNotBlinded, err)
}

func TestFinalizeForeignSignature(t *testing.T) {
	r := require.New(t)

	bank, err := NewBank(cfg)
	r.NoError(err)
	otherBank, err := NewBank(cfg)
	r.NoError(err)
	requester, err := NewRequester(cfg)
	r.NoError(err)

	c := newTestCoin(t)
	blinded, err := requester.RequestSignature(c, bank.PublicKey())
	r.NoError(err)

	// A blind signature from a different bank doesn't unblind into anything
	// that verifies under the embedded key.
	_, err = requester.Finalize(c, otherBank.Issue(blinded))
	r.Equal(shared.ErrInvalidSignature, err)
}
