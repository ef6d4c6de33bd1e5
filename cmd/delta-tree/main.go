// Package main provides the delta-tree CLI, a terminal front door to the
// same core the panel uses.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
