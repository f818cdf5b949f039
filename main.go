package main

import "github.com/xkilldash9x/graft/cmd"

func main() {
	cmd.Execute()
}
