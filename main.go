package main

import (
	"os"

	"github.com/gridwatt/gridplan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
