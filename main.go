package main

import "github.com/khanhnv2901/webint/cmd"

var execCmd = cmd.Execute

func main() {
	execCmd()
}
