package main

import "github.com/meenmo/curvelib/cmd/curvetool/commands"

func main() {
	commands.Execute()
}
