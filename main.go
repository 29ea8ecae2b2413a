package main

import (
	"seq-metadata/cmd"
)

func main() {
	cmd.Execute()
}
