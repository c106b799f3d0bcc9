package main

import "github.com/Laisky/web-mcp/cmd"

func main() {
	cmd.Execute()
}
