package lox

// Version is the interpreter release string reported by the CLI.
var Version = "0.3.0"

// BuildDate may be overridden at link time (-ldflags "-X ...BuildDate=...").
var BuildDate = "dev"
