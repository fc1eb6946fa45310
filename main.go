package main

import "github.com/ridoystarlord/ddlgen/cmd"

func main() {
	cmd.Execute()
}
