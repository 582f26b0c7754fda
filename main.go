package main

import "grit/cmd"

func main() {
	cmd.Execute()
}
