package main

import "github.com/rahayucraft/studio-management/cmd"

func main() {
	cmd.Execute()
}
