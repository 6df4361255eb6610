package coin

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/blindcash/ecash/commitment"
	"github.com/blindcash/ecash/config"
	"github.com/blindcash/ecash/shared"
)

type (
	Config = config.Config
	Rand   = shared.Rand
	Hasher = shared.Hasher
)

// Side selects which share of a round a merchant challenges.
type Side byte

const (
	Left  Side = 0
	Right Side = 1
)

const canonicalNumFields = 5

// Coin is the bearer token. The bank's signature attests to the canonical
// form only; the share preimages and the owner label never leave the payer
// unless challenged.
type Coin struct {
	Owner   string
	Amount  uint64
	GUID    string
	BankTag string

	Left  [][]byte
	Right [][]byte

	LeftHashes  [][]byte
	RightHashes [][]byte

	// Issuing-bank key material, carried as opaque strings.
	BankModulus  string
	BankExponent string

	BlindedForm []byte
	Signature   []byte
}

// New creates an unsigned coin: commitments built, guid assigned. The guid
// is a uuid in dash-free hex so the dash-delimited canonical form splits
// unambiguously.
func New(cfg *Config, rnd Rand, hasher Hasher, owner string, amount uint64) (*Coin, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if amount == 0 {
		return nil, fmt.Errorf("invalid `amount`; expected: > 0")
	}

	shares, err := commitment.Build(rnd, hasher, owner, cfg.NumRounds, cfg.ShareSize)
	if err != nil {
		return nil, err
	}

	u := uuid.New()
	return &Coin{
		Owner:       owner,
		Amount:      amount,
		GUID:        hex.EncodeToString(u[:]),
		BankTag:     cfg.BankTag,
		Left:        shares.Left,
		Right:       shares.Right,
		LeftHashes:  shares.LeftHashes,
		RightHashes: shares.RightHashes,
	}, nil
}

// CanonicalForm builds the exact string the bank's signature attests to:
// banktag-amount-guid-leftHashes-rightHashes, with the hash lists hex-encoded
// and comma-joined in round order. Deterministic and pure.
func (c *Coin) CanonicalForm() string {
	return strings.Join([]string{
		c.BankTag,
		strconv.FormatUint(c.Amount, 10),
		c.GUID,
		joinHashes(c.LeftHashes),
		joinHashes(c.RightHashes),
	}, "-")
}

// Reveal answers a challenge with the round's share for the demanded side.
func (c *Coin) Reveal(side Side, round uint) ([]byte, error) {
	if round >= uint(len(c.Left)) {
		return nil, shared.ErrRoundOutOfRange
	}

	if side == Left {
		return c.Left[round], nil
	}
	return c.Right[round], nil
}

// Sealed reports whether the bank signature is attached. A sealed coin is
// read-only except for answering challenges.
func (c *Coin) Sealed() bool {
	return len(c.Signature) > 0
}

// ParsedCoin is the public view recovered from a canonical form: everything
// a merchant needs to check a presentation, nothing that identifies the
// payer.
type ParsedCoin struct {
	BankTag string
	Amount  uint64
	GUID    string

	LeftHashes  [][]byte
	RightHashes [][]byte
}

// Parse recovers the commitment hashes and guid from a canonical form,
// enforcing the issuer tag and the per-side round counts.
func Parse(s string, cfg *Config) (*ParsedCoin, error) {
	fields := strings.Split(s, "-")
	if len(fields) != canonicalNumFields {
		return nil, shared.ErrMalformedCoin
	}

	if fields[0] != cfg.BankTag {
		return nil, shared.ErrUnrecognizedIssuer
	}

	amount, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil || amount == 0 {
		return nil, shared.ErrMalformedCoin
	}

	if fields[2] == "" {
		return nil, shared.ErrMalformedCoin
	}

	left, err := splitHashes(fields[3], cfg.NumRounds)
	if err != nil {
		return nil, err
	}
	right, err := splitHashes(fields[4], cfg.NumRounds)
	if err != nil {
		return nil, err
	}

	return &ParsedCoin{
		BankTag:     fields[0],
		Amount:      amount,
		GUID:        fields[2],
		LeftHashes:  left,
		RightHashes: right,
	}, nil
}

func joinHashes(hashes [][]byte) string {
	encoded := make([]string, len(hashes))
	for i, h := range hashes {
		encoded[i] = hex.EncodeToString(h)
	}
	return strings.Join(encoded, ",")
}

func splitHashes(s string, numRounds uint) ([][]byte, error) {
	encoded := strings.Split(s, ",")
	if uint(len(encoded)) != numRounds {
		return nil, shared.ErrMalformedCoin
	}

	hashes := make([][]byte, len(encoded))
	for i, e := range encoded {
		h, err := hex.DecodeString(e)
		if err != nil || len(h) == 0 {
			return nil, shared.ErrMalformedCoin
		}
		hashes[i] = h
	}
	return hashes, nil
}
