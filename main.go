package main

import "pyviz/cmd"

func main() {
	cmd.Execute()
}
