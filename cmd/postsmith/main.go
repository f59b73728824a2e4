package main

import "postsmith/cmd/postsmith/cmd"

func main() {
	cmd.Execute()
}
