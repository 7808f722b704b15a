package main

import (
	"ccmenubar-installer/cmd" // CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// ccmenubar-installer installs the CCMenuBar menu-bar status utility on macOS:
//   - Downloads the pinned release archive and refuses it unless its sha256 matches
//   - Installs the CLI under its command name and compiles the AppleScript
//     into CCMenuBar.app with osacompile
//   - Links the bundle into /Applications and installs the hooks example and README
//   - Runs `ccmenubar --help` as a smoke test
//
// Every destination is configurable (YAML, .env, flags) so the whole procedure
// can run against a sandbox directory.
func main() {
	cmd.Execute()
}
