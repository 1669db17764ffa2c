package main

import "github.com/prajna-dev/prajna/internal/cli"

func main() {
	cli.Execute()
}
