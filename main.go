package main

import "github.com/horacio12345/image-compressor/cmd"

func main() {
	cmd.Execute()
}
