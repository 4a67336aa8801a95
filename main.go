package main

import (
	"github.com/ronanpaixao/SkyAlchemy/cli"
)

func main() {
	cli.Start()
}
