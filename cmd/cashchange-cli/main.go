// Command cashchange-cli prints the change breakdown for one bill and
// cash amount.
//
//	cashchange-cli -bill 237 -cash 500
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"cashchange/internal/cli"
	"cashchange/internal/core"
	applog "cashchange/internal/log"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns 0 when change was computed or the amount was exact, 1 for
// rejected input and 2 for usage or configuration errors.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("cashchange-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	bill := fs.String("bill", "", "bill amount")
	cash := fs.String("cash", "", "cash given")
	asJSON := fs.Bool("json", false, "print the settlement as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := cli.LoadConfig()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	// the terminal output is the result; logs only go to stderr
	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(cfg.LogLevel),
		Format:    cfg.LogFormat,
		Component: applog.ComponentCLI,
		Output:    stderr,
	})

	register, err := cli.NewRegister(cfg, logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	s := register.Settle(core.ParseAmount(*bill), core.ParseAmount(*cash))
	logger.Debug("Change settled",
		applog.FieldOperation, applog.OpSettle,
		applog.FieldBill, s.Bill.String(),
		applog.FieldCash, s.Cash.String(),
		applog.FieldOutcome, string(s.Validation.Outcome))

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
	} else {
		printSettlement(stdout, stderr, s, register.Currency)
	}

	if s.Validation.Outcome == core.Rejected {
		return 1
	}
	return 0
}

func printSettlement(stdout, stderr io.Writer, s core.Settlement, currency core.Currency) {
	switch s.Validation.Outcome {
	case core.Rejected:
		for _, reason := range s.Validation.Reasons {
			fmt.Fprintf(stderr, "%s: %s\n", reason.Field, reason.Message)
		}
		return
	case core.ExactPayment:
		fmt.Fprintln(stdout, s.Notice(currency))
		return
	}

	fmt.Fprintf(stdout, "Bill Amount:      %s\n", currency.Format(s.Bill))
	fmt.Fprintf(stdout, "Cash Given:       %s\n", currency.Format(s.Cash))
	fmt.Fprintf(stdout, "Change to Return: %s\n\n", currency.Format(s.Change))

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DENOMINATION\tCOUNT\tTOTAL")
	for _, e := range s.Breakdown.Entries {
		fmt.Fprintf(tw, "%s %s\t%d\t%s\n",
			currency.FormatUnits(e.Denomination), currency.Kind(e.Denomination),
			e.Count, currency.FormatUnits(e.Subtotal))
	}
	tw.Flush()

	fmt.Fprintf(stdout, "\nTotal Notes/Coins: %d\n", s.Breakdown.TotalNoteCount)
	if s.Breakdown.Dropped.Decimal().IsPositive() {
		fmt.Fprintf(stdout, "Not returned:      %s\n", currency.Format(s.Breakdown.Dropped))
	}
}
