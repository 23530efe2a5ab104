package main

import "github.com/mvp-joe/monosplit/internal/cli"

func main() {
	cli.Execute()
}
