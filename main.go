package main

import "hostlink/cmd"

func main() {
	cmd.Execute()
}
