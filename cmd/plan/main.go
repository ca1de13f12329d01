// Command plan ranks an inventory exported as JSON and prints the
// distribution plan, optionally writing it as CSV.
//
//	plan -in inventory.json -top 10 -out plan.csv
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"foodbank/internal/distribution"
)

func main() {
	in := flag.String("in", "-", "inventory JSON file (- for stdin)")
	top := flag.Int("top", 0, "number of entries to print (0 for all)")
	out := flag.String("out", "", "also write the plan as CSV to this file")
	flag.Parse()

	if err := run(*in, *top, *out, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "plan:", err)
		os.Exit(1)
	}
}

func run(in string, top int, out string, stdout io.Writer) error {
	if top < 0 {
		return errors.New("-top must not be negative")
	}

	var r io.Reader = os.Stdin
	if in != "-" {
		f, err := os.Open(in)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	items, err := distribution.DecodeItems(r, time.Now())
	if err != nil {
		return err
	}

	plan, err := distribution.ComputePlan(items)
	if err != nil {
		return err
	}
	plan = distribution.Top(plan, top)

	if err := printPlan(stdout, plan); err != nil {
		return err
	}

	if out == "" {
		return nil
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := distribution.WriteCSV(f, plan); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func printPlan(w io.Writer, plan []distribution.PlanEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tFOOD ITEM\tTYPE\tDAYS LEFT\tQUANTITY\tRECOMMENDED\tSCORE")
	for _, e := range plan {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%.2f\t%.2f\n",
			e.Rank,
			e.FoodItem,
			e.FoodType,
			e.DaysUntilExpiry,
			e.CurrentQuantity,
			e.RecommendedQuantity,
			e.PriorityScore,
		)
	}
	return tw.Flush()
}
