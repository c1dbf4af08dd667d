package main

import "github.com/nfrund/unisocial/cmd/unisocial/cmd"

func main() {
	cmd.Execute()
}
