// Command jenictl drives the interpreter and the life context from a terminal.
package main

import (
	"os"

	"github.com/somnathbasteai/jeni-bot/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	Execute()
}
