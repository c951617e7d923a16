package main

import "github.com/NewTec-GmbH/lobster-rust/internal/cli"

func main() {
	cli.Execute()
}
