// Command wasmcore loads and validates a single Wasm binary: it lowers
// the result through a Sandbox and links it with an empty import
// environment, exiting non-zero if the module fails to validate, decode,
// or link.
//
// Binary decoding itself is an external collaborator (spec.md §1): this
// binary only exercises it via the wasm.Decoder hook, which is nil unless
// a parser package has registered itself by the time main runs.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wasmjit-omr/winter"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("wasmcore", flag.ContinueOnError)
	debug := fs.Bool("debug", false, "print a stack trace on a fatal (programming error) abort")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: wasmcore [-debug] <path-to-wasm-binary>")
		return 2
	}

	defer func() {
		if r := recover(); r != nil {
			if fe, ok := r.(*wasm.FatalError); ok {
				fmt.Fprintln(os.Stderr, fe.Error())
				if *debug {
					panic(fe)
				}
				os.Exit(2)
			}
			panic(r)
		}
	}()

	return load(fs.Arg(0))
}

func load(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if wasm.Decoder == nil {
		fmt.Fprintln(os.Stderr, "wasmcore: no decoder registered (binary parsing is out of scope for this core)")
		return 1
	}

	abstract, err := wasm.Decoder(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	sandbox := wasm.NewSandbox()
	module, err := wasm.NewModule(abstract, sandbox)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if _, err := wasm.Instantiate(module, wasm.NewImportEnvironment()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return 0
}
