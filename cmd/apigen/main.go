// apigen generates the C++ interface of an API described in a JSON or YAML
// document, and the bindings exposing that interface to C, Kotlin, Swift,
// JavaScript and Go.
//
// Run: go run ./cmd/apigen --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "apigen: %v\n", err)
		stop()
		os.Exit(1)
	}
}
