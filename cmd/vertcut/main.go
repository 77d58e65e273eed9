package main

import "vertcut/internal/cli"

func main() {
	cli.Main()
}
