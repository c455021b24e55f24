package main

import "github.com/fifotax/fifotax/cmd"

func main() {
	cmd.Execute()
}
