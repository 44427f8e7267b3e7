// Package repl is the interactive loop: one persistent sri.Service, one
// line at a time. Definitions and variables survive between lines.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/lmorg/readline"

	"github.com/edipofederle/sri-sub002/source/object"
	"github.com/edipofederle/sri-sub002/source/sri"
	"github.com/edipofederle/sri-sub002/source/text"
)

func Start(out io.Writer) {
	fmt.Fprint(out, text.Logo())
	svc := sri.NewService(&sri.Options{Output: out, SourceName: "REPL"})
	rline := readline.NewInstance()
	buffer := ""
	for {
		if buffer == "" {
			rline.SetPrompt(text.PROMPT)
		} else {
			rline.SetPrompt(text.CONTINUE)
		}
		line, err := rline.Readline()
		if err != nil {
			return
		}
		if buffer == "" {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if line == "quit" {
				return
			}
		}
		buffer = buffer + line + "\n"
		result, rtErr := svc.Do(buffer)
		if rtErr != nil {
			// An unclosed construct isn't a mistake yet: keep reading
			// lines until the 'end' arrives or the input goes wrong in
			// some other way.
			if rtErr.ErrorId == "parse/end" {
				continue
			}
			fmt.Fprintln(out, rtErr.Inspect(object.ViewStdOut))
			buffer = ""
			continue
		}
		fmt.Fprintln(out, "=> "+result.Inspect(object.ViewRubyLiteral))
		buffer = ""
	}
}
