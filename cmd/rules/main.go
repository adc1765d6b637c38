package main

import (
	"github.com/ErwinJ1299/scout2-sub002/cmd/rules/command"
)

func main() {
	command.Execute()
}
