package main

import (
	"os"

	"github.com/dshills/branchdiff/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
