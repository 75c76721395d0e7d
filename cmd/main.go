package main

import (
	"os"

	"github.com/linkalytics/factorlink/cmd/factorlink"
)

func main() {
	if err := factorlink.Execute(); err != nil {
		os.Exit(1)
	}
}
