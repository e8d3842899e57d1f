package main

import "github.com/pixelhive/pixelhive-cli/cmd/pixelhive/commands"

func main() {
	commands.Execute()
}
