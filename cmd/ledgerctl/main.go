package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"lending-ledger/internal/adapter/repository/mysql"
	"lending-ledger/internal/config"
	"lending-ledger/internal/domain/ledger"
	"lending-ledger/internal/infrastructure/db"
	"lending-ledger/internal/infrastructure/logging"
	ucLedger "lending-ledger/internal/usecase/ledger"
	"lending-ledger/pkg/id"
)

// errBrokenChain makes verify exit non-zero without a usage dump.
var errBrokenChain = errors.New("ledger integrity check failed")

type opener func() (*gorm.DB, error)

func openFromEnv() (*gorm.DB, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := logging.InitLogger(cfg.LogLevel, "text"); err != nil {
		return nil, err
	}
	return db.OpenGorm(cfg.MySQLDSN(), cfg.DBPool())
}

func newRootCmd(open opener, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Operator tooling for the lending ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, err := open()
			if err != nil {
				return err
			}
			if err := db.Migrate(gdb); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "verify",
		Short: "Walk the chain and report the first broken block",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := ledgerUsecase(open, ucLedger.NewChain(nil, nil))
			if err != nil {
				return err
			}
			res, err := uc.Verify(cmd.Context())
			if err != nil {
				return err
			}
			if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if !res.Valid {
				return errBrokenChain
			}
			return nil
		},
	})

	var (
		afterID uint64
		limit   int
		uid     string
	)
	blocks := &cobra.Command{
		Use:   "blocks",
		Short: "Print blocks in chain order",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := ledgerUsecase(open, ucLedger.NewChain(nil, nil))
			if err != nil {
				return err
			}
			var bs []ledger.Block
			if uid != "" {
				bs, err = uc.History(cmd.Context(), uid)
			} else {
				bs, err = uc.List(cmd.Context(), ucLedger.ListInput{AfterID: afterID, Limit: limit})
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), bs)
		},
	}
	blocks.Flags().Uint64Var(&afterID, "after", 0, "only blocks with a greater id")
	blocks.Flags().IntVarP(&limit, "limit", "n", ucLedger.DefaultListLimit, "page size")
	blocks.Flags().StringVar(&uid, "unique-data-id", "", "history of one record")
	root.AddCommand(blocks)
	root.AddCommand(newAppendCmd(open))

	return root
}

// newAppendCmd records an operator entry, e.g. a manual correction, on the chain.
func newAppendCmd(open opener) *cobra.Command {
	var (
		event string
		actor string
		uid   string
		meta  map[string]string
	)
	cmd := &cobra.Command{
		Use:   "append",
		Short: "Append one block to the chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			chain := ucLedger.NewChain(nil, nil)
			uc, err := ledgerUsecase(open, chain)
			if err != nil {
				return err
			}
			if uid == "" {
				uid = id.NewUniqueDataID(chain.Timestamp())
			}
			in := ucLedger.AppendInput{UniqueDataID: uid, Actor: actor, EventType: event}
			if len(meta) > 0 {
				in.Metadata = meta
			}
			b, err := uc.Append(cmd.Context(), in)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), b)
		},
	}
	cmd.Flags().StringVar(&event, "event", "", "event label")
	cmd.Flags().StringVar(&actor, "actor", "admin", "actor recorded on the block")
	cmd.Flags().StringVar(&uid, "unique-data-id", "", "record the block belongs to; generated when empty")
	cmd.Flags().StringToStringVar(&meta, "meta", nil, "metadata as key=value pairs")
	_ = cmd.MarkFlagRequired("event")
	return cmd
}

func ledgerUsecase(open opener, chain *ucLedger.Chain) (*ucLedger.Usecase, error) {
	gdb, err := open()
	if err != nil {
		return nil, err
	}
	return ucLedger.NewUsecase(mysql.NewBlockRepository(gdb), mysql.NewGormUoW(gdb), chain, logging.WithComponent("ledgerctl"), nil), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := newRootCmd(openFromEnv, os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
