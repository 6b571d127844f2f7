package main

import "os"

func main() {
	server := NewServer("0.1.0")
	if err := server.RunStdio(); err != nil {
		os.Exit(1)
	}
}
