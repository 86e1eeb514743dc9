package main

import (
	"os"

	"github.com/ariel-frischer/relnotes/internal/cli/update"
)

func main() {
	os.Exit(update.Execute())
}
