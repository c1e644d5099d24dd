package main

import "github.com/notargets/gobasis/cmd"

func main() {
	cmd.Execute()
}
