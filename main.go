package main

import (
	"os"

	"github.com/manjumh021/flow-manager/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
