// Command authsvc runs the authentication service: it resolves session tokens
// against Redis and exposes them over HTTP.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
