package main

import "github.com/example/murojaahbot/internal/cli"

func main() {
	cli.Execute()
}
