package main

import (
	"github.com/octave-ivi/octave/cmd"
)

func main() {
	cmd.Execute()
}
