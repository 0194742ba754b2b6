// cmd/ccboard/main.go
package main

import (
	cmd "github.com/mwiater/ccboard/internal/cli"
)

// executeCmd is swapped in tests.
var executeCmd = cmd.Execute

// main starts the ccboard CLI by delegating to the cobra root command.
func main() {
	executeCmd()
}
