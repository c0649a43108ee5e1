package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"dn-damage-calc/internal/goldsplit"
)

const goldUsage = `Usage: dncalc gold [flags]

Splits a raid sale between members after paying for market stamps.

Flags:
`

// runGold handles "dncalc gold".
func runGold(args []string, w, errw io.Writer) error {
	fs := flag.NewFlagSet("gold", flag.ContinueOnError)
	fs.SetOutput(errw)
	var req goldsplit.Request
	fs.Int64Var(&req.Sale.Gold, "gold", 0, "Sale price, gold")
	fs.Int64Var(&req.Sale.Silver, "silver", 0, "Sale price, silver (0-99)")
	fs.Int64Var(&req.Sale.Copper, "copper", 0, "Sale price, copper (0-99)")
	fs.Int64Var(&req.Stamps, "stamps", 0, "Stamps used, 5 gold each")
	fs.IntVar(&req.Members, "members", 8, "Party members sharing the sale")
	jsonOut := fs.Bool("json", false, "Output the result as JSON")
	fs.Usage = func() {
		fmt.Fprint(errw, goldUsage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if req.Sale.Silver >= goldsplit.CopperPerSilver || req.Sale.Copper >= goldsplit.CopperPerSilver {
		return fmt.Errorf("silver and copper take at most two digits")
	}

	res, err := goldsplit.Split(req)
	if err != nil {
		return err
	}
	if *jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	fmt.Fprintf(w, "Pool after stamps: %s\n", goldsplit.Coins{Copper: res.Pool}.Normalize())
	fmt.Fprintf(w, "Per member (%d):   %s\n", req.Members, res.Share)
	return nil
}
