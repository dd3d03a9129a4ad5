package main

import "github.com/soltomm/PinoGPT/internal/cli"

func main() {
	cli.Execute()
}
