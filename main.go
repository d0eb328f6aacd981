package main

import (
	"fmt"
	"os"

	"github.com/triples-lang/triples/cmd"
)

func main() {
	if err := cmd.App().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cmd.ExitUsageOrIOFail)
	}
}
