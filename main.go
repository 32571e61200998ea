// Package main is the entry point for the mklinkdef CLI.
package main

import "mklinkdef.dev/pkg/mklinkdef/cmd"

func main() {
	cmd.Execute()
}
