package main

import "github.com/spf13/pflag"

// addGlobalFlags registers the flags every subcommand inherits, the same
// split the teacher uses between cobra (command tree) and a directly
// populated pflag.FlagSet for flags shared across subcommands
// (_examples/cue-lang-cue/cmd/cue/cmd/flags.go's addGlobalFlags).
func addGlobalFlags(f *pflag.FlagSet) {
	f.Bool("stdlib", true, "load the bundled standard library into the workspace")
}
