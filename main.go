package main

import (
	"log"

	"github.com/sadopc/routine/internal/commands"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("routine: ")

	if err := commands.New().Execute(); err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}
