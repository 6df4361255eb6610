// Package acceptance implements the merchant side of a spend: signature
// verification followed by the cut-and-choose challenge rounds.
package acceptance

import (
	"bytes"

	"github.com/spacemeshos/ed25519"

	"github.com/blindcash/ecash/blindsig"
	"github.com/blindcash/ecash/coin"
	"github.com/blindcash/ecash/config"
	"github.com/blindcash/ecash/shared"
)

type (
	Config           = config.Config
	Logger           = shared.Logger
	DisclosureRecord = shared.DisclosureRecord
)

// Merchant runs the acceptance protocol on presented coins. Its challenge
// draws must be unpredictable to the payer ahead of time.
type Merchant struct {
	cfg    *Config
	rnd    shared.Rand
	hasher shared.Hasher
	pub    ed25519.PublicKey
	priv   ed25519.PrivateKey
	logger Logger
}

func NewMerchant(cfg *Config) (*Merchant, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, err
	}

	return &Merchant{
		cfg:    cfg,
		rnd:    shared.CryptoRand{},
		hasher: shared.Sha256Hasher{},
		pub:    pub,
		priv:   priv,
		logger: shared.DisabledLogger{},
	}, nil
}

func (m *Merchant) SetLogger(logger Logger) {
	m.logger = logger
}

func (m *Merchant) SetRand(rnd shared.Rand) {
	m.rnd = rnd
}

func (m *Merchant) SetHasher(hasher shared.Hasher) {
	m.hasher = hasher
}

// PublicKey returns the key the merchant signs disclosure records with.
func (m *Merchant) PublicKey() ed25519.PublicKey {
	return m.pub
}

// Accept verifies a presented coin and runs the k challenge rounds,
// producing a signed disclosure record. A failure at any round aborts the
// whole acceptance; no funds are considered received. Accept only reads the
// coin, so concurrent acceptances of the same sealed coin need no
// coordination.
func (m *Merchant) Accept(c *coin.Coin) (*DisclosureRecord, error) {
	canonical := c.CanonicalForm()

	bankPub, err := blindsig.ParsePublicKey(c.BankModulus, c.BankExponent)
	if err != nil {
		return nil, shared.ErrMalformedCoin
	}
	if !blindsig.Verify(m.hasher, bankPub, c.Signature, []byte(canonical)) {
		return nil, shared.ErrInvalidSignature
	}

	parsed, err := coin.Parse(canonical, m.cfg)
	if err != nil {
		return nil, err
	}

	record := &DisclosureRecord{
		GUID:           parsed.GUID,
		ChallengeBits:  make([]byte, m.cfg.NumRounds),
		RevealedShares: make([][]byte, m.cfg.NumRounds),
	}

	for i := uint(0); i < m.cfg.NumRounds; i++ {
		bit, err := m.rnd.Bit()
		if err != nil {
			return nil, err
		}

		side := coin.Side(bit)
		share, err := c.Reveal(side, i)
		if err != nil {
			return nil, err
		}

		committed := parsed.LeftHashes[i]
		if side == coin.Right {
			committed = parsed.RightHashes[i]
		}
		if !bytes.Equal(m.hasher.Sum(share), committed) {
			return nil, shared.HashMismatchError{Round: int(i), Side: bit}
		}

		record.ChallengeBits[i] = bit
		record.RevealedShares[i] = share
	}

	digest, err := record.Digest(m.hasher)
	if err != nil {
		return nil, err
	}
	record.MerchantKey = m.pub
	record.MerchantSig = ed25519.Sign(m.priv, digest)

	m.logger.Info("acceptance: coin %s accepted after %d rounds", record.GUID, m.cfg.NumRounds)
	return record, nil
}
