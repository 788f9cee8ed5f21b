package main

import "github.com/brieflyhq/briefly/cmd/briefly/cmd"

func main() {
	cmd.Execute()
}
