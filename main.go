package main

import "github.com/acsolve/cavity/cmd"

func main() {
	cmd.Execute()
}
