// Command neurodeck is the NeuroDeck flashcard scheduler: an HTTP API on
// postgres plus local study commands backed by a SQLite state file.
package main

import (
	"context"
	"os"

	"github.com/phrazzld/neurodeck/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
