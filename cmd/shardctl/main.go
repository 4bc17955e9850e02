package main

import "github.com/andrescamacho/spaceshard-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
