package main

import (
	"os"

	"github.com/ariel-frischer/relnotes/internal/cli/extract"
)

func main() {
	os.Exit(extract.Execute())
}
