package main

import (
	cmd "github.com/aniknaemmm/GitSharp/cmd/gitstore/modules"
)

func main() {
	cmd.Execute()
}
