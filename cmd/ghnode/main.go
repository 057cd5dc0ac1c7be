package main

import "ghnode/internal/cmd"

func main() {
	cmd.Execute()
}
