// Command catalog manages products and posts on any supported storage engine.
package main

import (
	"os"

	"github.com/light-bringer/procat-orm/internal/config"
)

func main() {
	if err := newRootCommand(config.Load).Execute(); err != nil {
		os.Exit(1)
	}
}
