package main

import "ffind/cmd"

func main() {
	cmd.Execute()
}
