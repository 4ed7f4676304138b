package main

import "github.com/fxn-protocol/fxn-sdk-go/internal/cli"

func main() {
	cli.Execute()
}
