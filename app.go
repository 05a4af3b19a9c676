package main

import "github.com/masmgr/topoorder-go/cmd"

func main() {
	cmd.Run()
}
