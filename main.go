package main

import "github.com/kyleking/local-mw/cmd"

func main() {
	cmd.Execute()
}
