package main

import "github.com/abaad/hive/cmd"

func main() {
	cmd.Execute()
}
