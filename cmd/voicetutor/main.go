package main

import "voicetutor/internal/cli"

func main() {
	cli.Execute()
}
