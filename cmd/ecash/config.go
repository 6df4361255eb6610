package main

import (
	"fmt"
	"path/filepath"
	"reflect"

	"github.com/spacemeshos/smutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/blindcash/ecash/config"
)

const (
	defaultConfigFileName = "config.toml"
	defaultLogDebug       = false
	defaultOwner          = "alice"
	defaultAmount         = 20
)

var (
	defaultHomeDir    = filepath.Join(smutil.GetUserHomeDirectory(), "ecash")
	defaultConfigFile = filepath.Join(defaultHomeDir, defaultConfigFileName)
)

type Config struct {
	DemoCfg  *DemoConfig    `mapstructure:"demo"`
	EcashCfg *config.Config `mapstructure:"ecash"`
}

type DemoConfig struct {
	ConfigFile  string `mapstructure:"config"`
	Owner       string `mapstructure:"owner"`
	Amount      uint64 `mapstructure:"amount"`
	LogDebug    bool   `mapstructure:"logdebug"`
	DoubleSpend bool   `mapstructure:"doublespend"`
}

func defaultConfig() *Config {
	return &Config{
		DemoCfg: &DemoConfig{
			ConfigFile:  defaultConfigFile,
			Owner:       defaultOwner,
			Amount:      defaultAmount,
			LogDebug:    defaultLogDebug,
			DoubleSpend: true,
		},
		EcashCfg: config.DefaultConfig(),
	}
}

func loadConfig(cmd *cobra.Command) (*Config, error) {
	fileLocation := smutil.GetCanonicalPath(viper.GetString("config"))
	vip := viper.New()

	// The config file is optional; flags and defaults cover everything.
	_ = loadConfigFile(fileLocation, vip)

	cfg := defaultConfig()
	if err := vip.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %v", err)
	}

	// Ensure cli args are higher priority than the config file.
	ensureCLIFlags(cmd, cfg)

	return cfg, nil
}

func loadConfigFile(fileLocation string, vip *viper.Viper) error {
	if fileLocation == "" {
		fileLocation = defaultConfigFile
	}

	vip.SetConfigFile(fileLocation)
	if err := vip.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %v", err)
	}
	return nil
}

func setFlags(cmd *cobra.Command, cfg *Config) {
	flags := cmd.PersistentFlags()

	// Demo config.

	flags.StringVar(&cfg.DemoCfg.ConfigFile, "config",
		cfg.DemoCfg.ConfigFile, "Path to configuration file")

	flags.StringVar(&cfg.DemoCfg.Owner, "owner",
		cfg.DemoCfg.Owner, "Identity label of the payer")

	flags.Uint64Var(&cfg.DemoCfg.Amount, "amount",
		cfg.DemoCfg.Amount, "Face value of the minted coin")

	flags.BoolVar(&cfg.DemoCfg.LogDebug, "logdebug",
		cfg.DemoCfg.LogDebug, "Whether to enable debug logging")

	flags.BoolVar(&cfg.DemoCfg.DoubleSpend, "doublespend",
		cfg.DemoCfg.DoubleSpend, "Whether to spend the coin at a second merchant")

	// Protocol config.

	flags.StringVar(&cfg.EcashCfg.BankTag, "ecash-banktag",
		cfg.EcashCfg.BankTag, "Issuing-bank tag embedded in every coin")

	flags.StringVar(&cfg.EcashCfg.WalletDir, "ecash-walletdir",
		cfg.EcashCfg.WalletDir, "Directory finalized coins are persisted to")

	flags.UintVar(&cfg.EcashCfg.NumRounds, "ecash-numrounds",
		cfg.EcashCfg.NumRounds, "Number of cut-and-choose challenge rounds")

	flags.UintVar(&cfg.EcashCfg.ShareSize, "ecash-sharesize",
		cfg.EcashCfg.ShareSize, "Width of an identity share, in bytes")

	flags.UintVar(&cfg.EcashCfg.KeyBits, "ecash-keybits",
		cfg.EcashCfg.KeyBits, "Size of the bank's signing key")

	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}
}

func ensureCLIFlags(cmd *cobra.Command, cfg *Config) {
	assignFields := func(p reflect.Type, elem reflect.Value, name string) {
		for i := 0; i < p.NumField(); i++ {
			if p.Field(i).Tag.Get("mapstructure") == name {
				var val interface{}
				switch p.Field(i).Type.String() {
				case "bool":
					val = viper.GetBool(name)
				case "string":
					val = viper.GetString(name)
				case "uint", "uint8", "uint16":
					val = viper.GetUint(name)
				case "uint64":
					val = viper.GetUint64(name)
				default:
					val = viper.Get(name)
				}

				elem.Field(i).Set(reflect.ValueOf(val))
				return
			}
		}
	}

	// Viper can't layer nested structs, so changed flags are copied in by
	// tag lookup.
	cmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			name := f.Name

			ff := reflect.TypeOf(*cfg.DemoCfg)
			elem := reflect.ValueOf(cfg.DemoCfg).Elem()
			assignFields(ff, elem, name)

			ff = reflect.TypeOf(*cfg.EcashCfg)
			elem = reflect.ValueOf(cfg.EcashCfg).Elem()
			assignFields(ff, elem, name)
		}
	})
}
