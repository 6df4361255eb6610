package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spacemeshos/smutil/log"
	"github.com/spf13/cobra"

	"github.com/blindcash/ecash/acceptance"
	"github.com/blindcash/ecash/coin"
	"github.com/blindcash/ecash/issuance"
	"github.com/blindcash/ecash/ledger"
	"github.com/blindcash/ecash/reconciliation"
	"github.com/blindcash/ecash/shared"
)

var Cmd = &cobra.Command{
	Use:   "ecash",
	Short: "mint, spend and reconcile a coin locally",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			_, _ = fmt.Fprintln(os.Stderr, "failed to load config:", err)
			os.Exit(1)
		}

		log.DebugMode(cfg.DemoCfg.LogDebug)
		if err := run(cfg); err != nil {
			log.Error("demo failure: %v", err)
			os.Exit(1)
		}
	},
}

func init() {
	setFlags(Cmd, defaultConfig())
}

func main() {
	if err := Cmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *Config) error {
	logger := log.AppLog

	bank, err := issuance.NewBank(cfg.EcashCfg)
	if err != nil {
		return err
	}
	bank.SetLogger(logger)

	requester, err := issuance.NewRequester(cfg.EcashCfg)
	if err != nil {
		return err
	}
	requester.SetLogger(logger)

	deposits, err := ledger.NewLedger()
	if err != nil {
		return err
	}
	deposits.SetLogger(logger)

	// Mint and issue.
	c, err := coin.New(cfg.EcashCfg, shared.CryptoRand{}, shared.Sha256Hasher{}, cfg.DemoCfg.Owner, cfg.DemoCfg.Amount)
	if err != nil {
		return err
	}
	logger.Info("minted coin %s, amount %d", c.GUID, c.Amount)

	blinded, err := requester.RequestSignature(c, bank.PublicKey())
	if err != nil {
		return err
	}
	sealed, err := requester.Finalize(c, bank.Issue(blinded))
	if err != nil {
		return err
	}

	if err := coin.Persist(cfg.EcashCfg.WalletDir, sealed); err != nil {
		return err
	}
	logger.Info("coin %s sealed and persisted to %s", sealed.GUID, cfg.EcashCfg.WalletDir)

	// First spend.
	merchantA, err := acceptance.NewMerchant(cfg.EcashCfg)
	if err != nil {
		return err
	}
	merchantA.SetLogger(logger)

	recordA, err := merchantA.Accept(sealed)
	if err != nil {
		return err
	}
	if _, _, err := deposits.InsertIfAbsent(recordA.GUID, recordA); err != nil {
		return err
	}

	if !cfg.DemoCfg.DoubleSpend {
		logger.Info("single spend completed, ledger audit root %x", deposits.Root())
		return nil
	}

	// Second spend of the same coin at another merchant.
	merchantB, err := acceptance.NewMerchant(cfg.EcashCfg)
	if err != nil {
		return err
	}
	merchantB.SetLogger(logger)

	recordB, err := merchantB.Accept(sealed)
	if err != nil {
		return err
	}

	existing, inserted, err := deposits.InsertIfAbsent(recordB.GUID, recordB)
	if err != nil {
		return err
	}
	if inserted {
		logger.Info("no conflict recorded, nothing to reconcile")
		return nil
	}

	outcome := reconciliation.Reconcile(recordB.GUID, existing, recordB)
	printOutcome(existing, recordB, outcome)

	logger.Info("ledger audit root %x", deposits.Root())
	return nil
}

func printOutcome(a, b *shared.DisclosureRecord, outcome reconciliation.Outcome) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Round", "Merchant A", "Merchant B", "Opposite"})

	for i := range a.ChallengeBits {
		opposite := ""
		if a.ChallengeBits[i] != b.ChallengeBits[i] {
			opposite = "*"
		}
		table.Append([]string{
			strconv.Itoa(i),
			sideName(a.ChallengeBits[i]),
			sideName(b.ChallengeBits[i]),
			opposite,
		})
	}
	table.Render()

	fmt.Printf("verdict: %v\n", outcome.Verdict)
	if outcome.Verdict == reconciliation.PayerIdentified {
		fmt.Printf("payer identified at round %d: %s\n", outcome.Round, outcome.Identity)
	}
}

func sideName(bit byte) string {
	if bit == 0 {
		return "left"
	}
	return "right"
}
