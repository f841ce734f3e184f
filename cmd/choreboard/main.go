package main

import "choreboard/internal/cli"

func main() {
	cli.Execute()
}
