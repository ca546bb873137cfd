// Package main is the entry point for comp-pricer.
package main

import (
	"github.com/donaldgifford/comp-pricer/cmd/comp-pricer/cmd"
)

func main() {
	cmd.Execute()
}
