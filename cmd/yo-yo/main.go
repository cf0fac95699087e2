package main

import "github.com/pfrederiksen/yo-yo/internal/cli"

func main() {
	cli.Execute()
}
