// Command memsimctl assembles the simulator's engines from configuration
// and either replays a canned scenario or serves the HTTP introspection
// API over them.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
