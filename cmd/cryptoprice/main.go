package main

import "crypto-price/internal/cli"

func main() {
	cli.Execute()
}
