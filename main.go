package main

import "prompt-collector/cmd"

func main() {
	cmd.Execute()
}
