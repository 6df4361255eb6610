package coin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blindcash/ecash/config"
	"github.com/blindcash/ecash/shared"
)

var cfg = func() *config.Config {
	cfg := config.DefaultConfig()
	cfg.NumRounds = 4
	return cfg
}()

func newTestCoin(t *testing.T) *Coin {
	c, err := New(cfg, shared.CryptoRand{}, shared.Sha256Hasher{}, "alice", 20)
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	r := require.New(t)

	c := newTestCoin(t)
	r.Equal("alice", c.Owner)
	r.Equal(uint64(20), c.Amount)
	r.Equal(cfg.BankTag, c.BankTag)
	r.Equal(32, len(c.GUID))
	r.False(strings.Contains(c.GUID, "-"))
	r.Equal(int(cfg.NumRounds), len(c.Left))
	r.False(c.Sealed())

	// Each coin gets its own guid.
	c2 := newTestCoin(t)
	r.NotEqual(c.GUID, c2.GUID)
}

func TestNewInvalid(t *testing.T) {
	r := require.New(t)

	_, err := New(cfg, shared.CryptoRand{}, shared.Sha256Hasher{}, "", 20)
	r.Equal(shared.ErrInvalidIdentity, err)

	_, err = New(cfg, shared.CryptoRand{}, shared.Sha256Hasher{}, "alice", 0)
	r.Error(err)
}

func TestCanonicalFormRoundTrip(t *testing.T) {
	r := require.New(t)

	c := newTestCoin(t)
	s := c.CanonicalForm()

	// Deterministic.
	r.Equal(s, c.CanonicalForm())

	parsed, err := Parse(s, cfg)
	r.NoError(err)
	r.Equal(c.BankTag, parsed.BankTag)
	r.Equal(c.Amount, parsed.Amount)
	r.Equal(c.GUID, parsed.GUID)
	r.Equal(c.LeftHashes, parsed.LeftHashes)
	r.Equal(c.RightHashes, parsed.RightHashes)
}

func TestParseUnrecognizedIssuer(t *testing.T) {
	r := require.New(t)

	c := newTestCoin(t)
	c.BankTag = "otherbank"
	_, err := Parse(c.CanonicalForm(), cfg)
	r.Equal(shared.ErrUnrecognizedIssuer, err)
}

func TestParseMalformed(t *testing.T) {
	r := require.New(t)

	c := newTestCoin(t)
	valid := c.CanonicalForm()

	for _, s := range []string{
		"",
		cfg.BankTag,
		valid + "-extrafield",
		strings.Replace(valid, "20", "0", 1),              // zero amount
		strings.Replace(valid, "20", "twenty", 1),         // non-numeric amount
		valid[:strings.LastIndex(valid, ",")],             // dropped hash entry
		strings.Replace(valid, ",", ",zz", 1),             // bad hex entry
		valid[:strings.LastIndex(valid, "-")] + "-" + "aa", // right side round count mismatch
	} {
		_, err := Parse(s, cfg)
		r.Error(err, "input: %q", s)
		if err != shared.ErrUnrecognizedIssuer {
			r.Equal(shared.ErrMalformedCoin, err, "input: %q", s)
		}
	}
}

func TestReveal(t *testing.T) {
	r := require.New(t)

	c := newTestCoin(t)
	for i := uint(0); i < cfg.NumRounds; i++ {
		left, err := c.Reveal(Left, i)
		r.NoError(err)
		r.Equal(c.Left[i], left)

		right, err := c.Reveal(Right, i)
		r.NoError(err)
		r.Equal(c.Right[i], right)
	}

	_, err := c.Reveal(Left, cfg.NumRounds)
	r.Equal(shared.ErrRoundOutOfRange, err)
}
