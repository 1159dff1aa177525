package main

import (
	"os"

	"github.com/futureCreator/polyhello/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
