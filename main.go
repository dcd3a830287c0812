package main

import "squeezer/cmd"

func main() {
	cmd.Execute()
}
