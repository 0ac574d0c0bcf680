package main

import (
	"os"

	"github.com/joho/godotenv"

	"gtd-cli/internal/cli"
)

func main() {
	// Optional .env next to the invocation (GTD_DIR, GTD_FORMAT).
	_ = godotenv.Load()

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
