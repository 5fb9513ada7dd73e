package main

import "github.com/Norgate-AV/sgb/cmd"

func main() {
	cmd.Execute()
}
