package main

import (
	"github.com/napleton/fueltrakr/internal/cli"
)

func main() {
	cli.Execute()
}
