package main

import (
	"github.com/andrescamacho/mediator-go/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
