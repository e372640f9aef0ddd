package main

import (
	"github.com/pha4ge/primaschema/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
