package main

import "herbledger/cmd/herbledger/cmd"

func main() {
	cmd.Execute()
}
