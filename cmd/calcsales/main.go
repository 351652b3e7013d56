package main

import (
	"fmt"
	"os"

	"github.com/alhinc/calcsales/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		fmt.Println(commands.Message(err))
		os.Exit(1)
	}
}
