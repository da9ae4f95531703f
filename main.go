package main

import "github.com/proptoken/chaincore/cmd"

func main() {
	cmd.Execute()
}
