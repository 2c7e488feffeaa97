package main

import "timeos/cmd/timeos/commands"

func main() {
	commands.Execute()
}
