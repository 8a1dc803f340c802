package main

import "github.com/ridoystarlord/pguml/cmd"

func main() {
	cmd.Execute()
}
