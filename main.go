package main

import (
	"github.com/jjtimmons/crossdome/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
