package main

import "github.com/waymarkd/waymark/internal/cli"

func main() {
	cli.Execute()
}
