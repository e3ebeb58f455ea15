// Command fleetctl is the operator front-end: it drives the screen models
// from the terminal against a fleet_desk server.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
