package main

import "github.com/elliottslaughter/rust-gc-notes/cmd/summarize"

func main() {
	summarize.Execute()
}
