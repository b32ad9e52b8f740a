// Command jobpulse runs dashboard queries against an employment data file
// without starting the HTTP service.
//
//	jobpulse summary --data jobs.csv --industry Technology
//	jobpulse chart box-plot --data jobs.csv --location Remote --location Austin
//	jobpulse export --data jobs.csv --out out/tech.xlsx --industry Technology
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
