package main

import "github.com/adamwoolhether/xfer/internal/cli"

func main() {
	cli.Execute()
}
