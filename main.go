package main

import "github.com/qobs-build/xcflavor/cmd"

func main() {
	cmd.Execute()
}
