// Package sri is the embeddable face of the interpreter: hand it source
// text, get back a value or an error.
package sri

import (
	"io"
	"os"

	"github.com/edipofederle/sri-sub002/source/ast"
	"github.com/edipofederle/sri-sub002/source/evaluator"
	"github.com/edipofederle/sri-sub002/source/initializer"
	"github.com/edipofederle/sri-sub002/source/lexer"
	"github.com/edipofederle/sri-sub002/source/object"
	"github.com/edipofederle/sri-sub002/source/parser"
	"github.com/edipofederle/sri-sub002/source/settings"
)

type Options struct {
	// Pre-seeded top-level variables.
	Namespaces map[string]object.Object
	// Where puts and friends write. Defaults to stdout.
	Output io.Writer
	// A name for the source, used in error positions.
	SourceName string
}

// Evaluate runs a whole program in a fresh interpreter and returns the
// value of its last top-level expression. Each call forks its own registry
// from the shared base, so concurrent calls are independent.
func Evaluate(source string, opts *Options) (object.Object, *object.Error) {
	svc := NewService(opts)
	return svc.Do(source)
}

// A Service is a persistent interpreter: registry, top-level environment
// and class definitions survive from one Do to the next. The REPL runs on
// one of these.
type Service struct {
	opts *Options
	ev   *evaluator.Evaluator
	env  *object.Environment
}

func NewService(opts *Options) *Service {
	if opts == nil {
		opts = &Options{}
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	// The arena is shared by every parse this service performs; node ids
	// stay valid across Do calls, which is what keeps method bodies from
	// earlier lines callable later.
	arena := ast.NewArena()
	ev := evaluator.New(arena, initializer.BaseRegistry().Fork(), out)
	env := ev.NewTopEnvironment()
	for name, value := range opts.Namespaces {
		env.Set(name, value)
	}
	return &Service{opts: opts, ev: ev, env: env}
}

func (svc *Service) Do(source string) (object.Object, *object.Error) {
	name := svc.opts.SourceName
	if name == "" {
		name = "(sri)"
	}
	if settings.SHOW_LEXER {
		lexer.LexDump(source)
	}
	p := parser.NewWithArena(name, source, svc.ev.Arena())
	root := p.ParseProgram()
	if len(p.Ers) > 0 {
		err := p.Ers[0]
		err.Source = source
		return object.NIL, err
	}
	result := svc.ev.EvalProgram(root, svc.env)
	if err, ok := result.(*object.Error); ok {
		err.Source = source
		return object.NIL, err
	}
	return result, nil
}
