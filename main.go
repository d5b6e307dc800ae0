// Package main is the entry point for the expect CLI.
package main

import "expect.dev/pkg/expect/cmd"

func main() {
	cmd.Execute()
}
