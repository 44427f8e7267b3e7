package main

import (
	"fmt"
	"os"

	"github.com/edipofederle/sri-sub002/source/object"
	"github.com/edipofederle/sri-sub002/source/repl"
	"github.com/edipofederle/sri-sub002/source/sri"
)

func main() {
	if len(os.Args) < 2 {
		repl.Start(os.Stdout)
		return
	}

	filename := os.Args[1]
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sri: "+err.Error())
		os.Exit(1)
	}
	_, rtErr := sri.Evaluate(string(src), &sri.Options{
		Output:     os.Stdout,
		SourceName: filename,
	})
	if rtErr != nil {
		fmt.Fprintln(os.Stderr, rtErr.Inspect(object.ViewStdOut))
		os.Exit(1)
	}
}
