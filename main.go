package main

import "futurecommander/cmd"

func main() {
	cmd.Execute()
}
