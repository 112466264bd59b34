package main

import "github.com/Spok95/geosites/cmd/siteadm/commands"

func main() {
	commands.Execute()
}
