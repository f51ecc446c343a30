package main

import (
	"github.com/andrescamacho/prun-go/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
