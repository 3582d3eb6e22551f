package main

import (
	"github.com/libroquest/gamebook-server/internal/cli"
)

func main() {
	cli.Execute()
}
