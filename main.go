package main

import (
	"github.com/ErwinJ1299/scout2-sub002/api"
)

func main() {
	api.MainLoop()
}
