// Package issuance orchestrates the blind signing of a coin: the payer
// blinds the canonical form, the bank signs it sight unseen, and the payer
// unblinds and seals the coin.
package issuance

import (
	"github.com/blindcash/ecash/blindsig"
	"github.com/blindcash/ecash/coin"
	"github.com/blindcash/ecash/config"
	"github.com/blindcash/ecash/shared"
)

type (
	Config = config.Config
	Logger = shared.Logger
)

// Bank holds the issuing keypair and signs blinded representations. It never
// sees the canonical form it signs.
type Bank struct {
	cfg    *Config
	key    *blindsig.PrivateKey
	logger Logger
}

func NewBank(cfg *Config) (*Bank, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	key, err := blindsig.GenerateKey(cfg.KeyBits)
	if err != nil {
		return nil, err
	}

	return &Bank{cfg, key, shared.DisabledLogger{}}, nil
}

func (b *Bank) SetLogger(logger Logger) {
	b.logger = logger
}

func (b *Bank) PublicKey() *blindsig.PublicKey {
	return &b.key.PublicKey
}

// Issue signs a blinded representation.
func (b *Bank) Issue(blinded []byte) []byte {
	b.logger.Info("issuance: signing blinded representation (%d bytes)", len(blinded))
	return blindsig.Sign(b.key, blinded)
}

// Requester drives the payer side of issuance for a single coin. It keeps
// the blinding factor until the signature comes back.
type Requester struct {
	cfg    *Config
	hasher shared.Hasher
	factor []byte
	logger Logger
}

func NewRequester(cfg *Config) (*Requester, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Requester{
		cfg:    cfg,
		hasher: shared.Sha256Hasher{},
		logger: shared.DisabledLogger{},
	}, nil
}

func (r *Requester) SetLogger(logger Logger) {
	r.logger = logger
}

func (r *Requester) SetHasher(hasher shared.Hasher) {
	r.hasher = hasher
}

// RequestSignature blinds the coin's canonical form and records the bank key
// and blinded form on the coin. Blinding is single-use per coin: reusing a
// blinded representation voids the unlinkability of the blinding, so a
// second call fails instead.
func (r *Requester) RequestSignature(c *coin.Coin, bankPub *blindsig.PublicKey) ([]byte, error) {
	if len(c.BlindedForm) > 0 {
		return nil, shared.ErrAlreadyBlinded
	}

	blinded, factor, err := blindsig.Blind(r.hasher, bankPub, []byte(c.CanonicalForm()))
	if err != nil {
		return nil, err
	}

	c.BankModulus, c.BankExponent = bankPub.Marshal()
	c.BlindedForm = blinded
	r.factor = factor

	r.logger.Info("issuance: coin %s blinded", c.GUID)
	return blinded, nil
}

// Finalize unblinds the bank's signature, verifies it locally and seals the
// coin. From here on the canonical form must not change; only challenge
// bookkeeping remains.
func (r *Requester) Finalize(c *coin.Coin, blindSig []byte) (*coin.Coin, error) {
	if len(r.factor) == 0 || len(c.BlindedForm) == 0 {
		return nil, shared.ErrNotBlinded
	}

	bankPub, err := blindsig.ParsePublicKey(c.BankModulus, c.BankExponent)
	if err != nil {
		return nil, shared.ErrMalformedCoin
	}

	sig, err := blindsig.Unblind(bankPub, blindSig, r.factor)
	if err != nil {
		return nil, err
	}

	if !blindsig.Verify(r.hasher, bankPub, sig, []byte(c.CanonicalForm())) {
		return nil, shared.ErrInvalidSignature
	}

	c.Signature = sig
	r.factor = nil

	r.logger.Info("issuance: coin %s sealed", c.GUID)
	return c, nil
}
