package main

import (
	"os"

	"github.com/omarzayed/supportdesk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
