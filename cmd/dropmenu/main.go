// Package main provides the CLI entrypoint for dropmenu.
package main

func main() {
	Execute()
}
