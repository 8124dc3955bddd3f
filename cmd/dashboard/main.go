// Command dashboard runs the e-commerce dashboard HTTP server.
package main

import (
	"fmt"
	"os"

	"shoppulse/internal/app"
)

func main() {
	application, err := app.NewApplication()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		application.Logger.Error("application error", "error", err)
		os.Exit(1)
	}
}
