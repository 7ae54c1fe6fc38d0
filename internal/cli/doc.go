// Package cli wires together the Cobra command trees for the promptgate and
// kimi binaries.
//
// Both roots share the completion flags, resolve configuration, run a single
// completion, write the result as JSON to stdout, and return exit code 0 on
// success or 1 on any failure. The models, config, and version subcommands
// are attached to each root.
package cli
