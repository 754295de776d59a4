// Plain server entry point for `go run ./cmd/server`. The hometech CLI
// (cmd/hometech) wraps the same bootstrap with management commands.
package main

import (
	"log"

	"github.com/hometech/server/internal/server"
)

func main() {
	if err := server.Start(); err != nil {
		log.Fatal(err)
	}
}
