/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/ssargent/tokenuses/cmd/uses/cmd"
)

func main() {
	cmd.Execute()
}
