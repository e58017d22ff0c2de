// autopaint - natural-language pixel-art scripting for Aseprite.
package main

import (
	"os"

	"github.com/spriteforge/autopaint/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
