package main

import (
	"os"

	"github.com/graeme-hill/zypy-go/cmd/zypy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
