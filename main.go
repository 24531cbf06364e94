package main

import "github.com/jackchuka/gitsweep/cmd"

func main() {
	cmd.Execute()
}
