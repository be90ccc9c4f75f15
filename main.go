package main

import "legalcode-catalog/internal/cli"

func main() {
	cli.Execute()
}
