package main

import (
	"os"

	"github.com/rustyeddy/ofx2csv/cmd/ofx2csv/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
