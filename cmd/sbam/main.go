package main

import (
	"log"
	"os"

	"github.com/viant/sbam/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
