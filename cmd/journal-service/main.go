package main

import (
	"os"

	"github.com/emofit/emofit-server/journalservice"
)

func main() {
	if err := journalservice.Run(); err != nil {
		os.Exit(1)
	}
}
