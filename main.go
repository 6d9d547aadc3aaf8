package main

import (
	"os"

	"github.com/decker502/birdsong/internal/cli"
	"github.com/decker502/birdsong/pkg/embedded"
)

func main() {
	embedded.Init(assetsFS, dataFS)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
