package main

import (
	"github.com/andrescamacho/go-mediator/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
