// Package main is the entry point for the vesarank CLI tool, which computes
// VESA League player/team ratings from placement data and seeds teams into
// skill-balanced divisions.
package main

import "github.com/vesa-league/vesarank/cmd"

func main() {
	cmd.Execute()
}
