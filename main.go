package main

import "github.com/jywlabs/kalam/cmd"

func main() {
	cmd.Execute()
}
