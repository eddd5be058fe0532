package main

import (
	"os"

	"github.com/blakeaaronroberts/smallsh/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
