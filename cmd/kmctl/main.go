package main

import "github.com/Aung-Nyi-Thant/KeepMemories/internal/cli"

func main() {
	cli.Execute()
}
