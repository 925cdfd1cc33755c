package main

import (
	"github.com/dvcrn/igsetup/internal/cli"
)

// version is injected at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.Execute()
}
