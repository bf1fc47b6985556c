package main

import (
	"os"

	"github.com/studio27se/ehub/cmd/helpcenter/commands"
)

func main() {
	os.Exit(commands.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
