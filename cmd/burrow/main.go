package main

import (
	"os"

	"burrow/internal/cliapp"
)

func main() {
	os.Exit(cliapp.Run(os.Args[1:]))
}
