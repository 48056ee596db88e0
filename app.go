package main

import "github.com/masmgr/gityear/cmd"

func main() {
	cmd.Run()
}
