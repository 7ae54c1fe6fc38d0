package main

import (
	"os"

	"github.com/dshills/promptgate/internal/cli"
)

func main() {
	os.Exit(cli.RunKimi())
}
