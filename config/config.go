package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spacemeshos/smutil"

	"github.com/blindcash/ecash/shared"
)

const (
	MinNumRounds = 1
	MaxNumRounds = 1024

	MaxShareSize = 4096

	MinKeyBits = 512
)

const (
	DefaultBankTag = "ecashbank"

	// DefaultNumRounds is the cut-and-choose security parameter. A payer who
	// wants a coin to survive two acceptances without leaking identity must
	// guess every challenge bit of the first acceptance in advance, so the
	// escape probability is 2^-DefaultNumRounds.
	DefaultNumRounds = 16

	DefaultShareSize = 64
	DefaultKeyBits   = 2048

	DefaultWalletDirName = "wallet"
)

var DefaultWalletDir = filepath.Join(smutil.GetUserHomeDirectory(), "ecash", DefaultWalletDirName)

type Config struct {
	BankTag   string `mapstructure:"ecash-banktag"`
	WalletDir string `mapstructure:"ecash-walletdir"`

	// Protocol params.
	NumRounds uint `mapstructure:"ecash-numrounds"`
	ShareSize uint `mapstructure:"ecash-sharesize"`
	KeyBits   uint `mapstructure:"ecash-keybits"`
}

func (cfg *Config) Validate() error {
	if cfg.BankTag == "" {
		return fmt.Errorf("invalid `BankTag`; expected: non-empty")
	}

	// The canonical coin form is dash-delimited.
	if strings.Contains(cfg.BankTag, "-") {
		return fmt.Errorf("invalid `BankTag`; expected: no %q separator, given: %s", "-", cfg.BankTag)
	}

	if cfg.NumRounds < MinNumRounds {
		return fmt.Errorf("invalid `NumRounds`; expected: >= %d, given: %d", MinNumRounds, cfg.NumRounds)
	}

	if cfg.NumRounds > MaxNumRounds {
		return fmt.Errorf("invalid `NumRounds`; expected: <= %d, given: %d", MaxNumRounds, cfg.NumRounds)
	}

	minShareSize := uint(len(shared.IdentityMarker) + 1)
	if cfg.ShareSize < minShareSize {
		return fmt.Errorf("invalid `ShareSize`; expected: >= %d, given: %d", minShareSize, cfg.ShareSize)
	}

	if cfg.ShareSize > MaxShareSize {
		return fmt.Errorf("invalid `ShareSize`; expected: <= %d, given: %d", MaxShareSize, cfg.ShareSize)
	}

	if cfg.KeyBits < MinKeyBits {
		return fmt.Errorf("invalid `KeyBits`; expected: >= %d, given: %d", MinKeyBits, cfg.KeyBits)
	}

	return nil
}

func DefaultConfig() *Config {
	return &Config{
		BankTag:   DefaultBankTag,
		WalletDir: DefaultWalletDir,

		NumRounds: DefaultNumRounds,
		ShareSize: DefaultShareSize,
		KeyBits:   DefaultKeyBits,
	}
}
