package main

import "github.com/Skufu/protocolrx/internal/cli"

func main() {
	cli.Execute()
}
