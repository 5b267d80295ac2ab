package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/apriori/apriori"
	"github.com/katalvlaran/apriori/basket"
	"github.com/katalvlaran/apriori/rules"
	"github.com/katalvlaran/apriori/store"
)

var (
	mineInput       string
	mineItemsetsOut string
	mineRulesOut    string
	mineDB          string
)

// mineCmd represents the mine command
var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine frequent itemsets and association rules from a basket file",
	Long: `Mine runs the full pipeline over a basket file: three counting passes
(singletons, pairs, triples), rule generation and scoring, and the two
text reports.

The frequent-itemsets report lists itemsets of sizes 2 and 3, one per
line. The rules report holds six ranked sections: the top rules by
confidence, lift and conviction, for combined itemset sizes 2 and 3.

Examples:
  # Defaults: threshold 100, reports to freq_itemsets.out and rules.out
  apriori mine -i browsing.txt

  # Custom threshold and report locations
  apriori mine -i browsing.txt -s 500 --itemsets-out sets.txt --rules-out rules.txt

  # Also persist the run to SQLite for the serve command
  apriori mine -i browsing.txt --db apriori.sqlite`,
	RunE: runMine,
}

func init() {
	rootCmd.AddCommand(mineCmd)

	mineCmd.Flags().StringVarP(&mineInput, "input", "i", "", "input basket data file (required)")
	mineCmd.Flags().IntP("support", "s", 100, "minimum support count for a frequent itemset")
	mineCmd.Flags().Int("top", 10, "rules per report section")
	mineCmd.Flags().StringVar(&mineItemsetsOut, "itemsets-out", "freq_itemsets.out", "frequent itemsets output file")
	mineCmd.Flags().StringVar(&mineRulesOut, "rules-out", "rules.out", "association rules output file")
	mineCmd.Flags().StringVar(&mineDB, "db", "", "SQLite database to persist the run (optional)")
	_ = mineCmd.MarkFlagRequired("input")

	for _, name := range []string{"support", "top"} {
		if err := viper.BindPFlag(name, mineCmd.Flags().Lookup(name)); err != nil {
			fmt.Fprintln(os.Stderr, "failed to bind flag:", name, err)
		}
	}
}

func runMine(cmd *cobra.Command, args []string) error {
	start := time.Now()

	src, err := basket.NewFileSource(mineInput)
	if err != nil {
		return err
	}

	opts := apriori.DefaultOptions()
	opts.SupportThreshold = viper.GetInt("support")
	opts.Check = viper.GetBool("check")
	opts.Logger = logger

	logger.Debug("mining",
		"input", mineInput,
		"support", opts.SupportThreshold,
		"check", opts.Check)

	res, err := apriori.Mine(cmd.Context(), src, opts)
	if err != nil {
		return err
	}

	all, err := rules.Generate(res)
	if err != nil {
		return err
	}

	if err = writeReport(mineItemsetsOut, func(f *os.File) error {
		return rules.WriteItemsets(f, res)
	}); err != nil {
		return err
	}
	if err = writeReport(mineRulesOut, func(f *os.File) error {
		return rules.WriteRules(f, all, viper.GetInt("top"))
	}); err != nil {
		return err
	}

	if mineDB != "" {
		db, err := store.Open(mineDB)
		if err != nil {
			return err
		}
		defer db.Close()

		if err = store.EnsureTables(cmd.Context(), db); err != nil {
			return err
		}
		runID, err := store.SaveRun(cmd.Context(), db, mineInput, opts.SupportThreshold, res, all)
		if err != nil {
			return err
		}
		logger.Info("run persisted", "db", mineDB, "run_id", runID)
	}

	logger.Info("mine finished",
		"baskets", res.TotalBaskets(),
		"itemsets", res.Len(),
		"rules", len(all),
		"elapsed", time.Since(start))
	return nil
}

// writeReport creates path, runs write against it and closes it, keeping
// the first error.
func writeReport(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err = write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
