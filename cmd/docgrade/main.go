// docgrade scores machine-produced structured document extractions
// against trusted ground truth and keeps a per-source evaluation
// ledger.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
