// Main entry point for the application
package main

import (
	"artslide/internal/cli"
)

func main() {
	cli.Execute()
}
