package main

import (
	"github.com/koussay97/space-travel-TSP/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
