package main

import (
	"os"

	"github.com/Annallisboa/QA-app/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
