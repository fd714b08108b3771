// Command ddtsp is the toolkit's command-line entry point: generate
// clustered TSP instances, solve them exactly or within a time budget,
// and render them for inspection (§4.H).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/geotsp/ddtsp/run"
)

func main() {
	if err := run.Dispatch(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "ddtsp: %v\n", err)
		os.Exit(1)
	}
}
