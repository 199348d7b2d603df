package main

import "github.com/pfrederiksen/nar-calendar/internal/cli"

func main() {
	cli.Execute()
}
