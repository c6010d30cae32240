package main

import "github.com/fakeyudi/hat/cmd"

func main() {
	cmd.Execute()
}
