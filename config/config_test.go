package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	r := require.New(t)

	r.NoError(DefaultConfig().Validate())

	cfg := *DefaultConfig()
	cfg.BankTag = ""
	r.Error(cfg.Validate())

	cfg = *DefaultConfig()
	cfg.BankTag = "first-national"
	r.Error(cfg.Validate())

	cfg = *DefaultConfig()
	cfg.NumRounds = 0
	r.Error(cfg.Validate())

	cfg = *DefaultConfig()
	cfg.NumRounds = MaxNumRounds + 1
	r.Error(cfg.Validate())

	cfg = *DefaultConfig()
	cfg.ShareSize = 2 // too small to hold the marker and an owner
	r.Error(cfg.Validate())

	cfg = *DefaultConfig()
	cfg.KeyBits = MinKeyBits - 1
	r.Error(cfg.Validate())
}
