// ABOUTME: Entry point for the soundexample CLI
// ABOUTME: Runs the command tree and exits non-zero on error
package main

import (
	"os"

	"github.com/justinhj/soundexample/internal/cli"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := cli.Run(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
