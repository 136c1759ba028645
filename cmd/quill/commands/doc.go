// Package commands defines the quill CLI.
//
// Commands
//
//   - (none)   Open the interactive editor
//   - run      Rewrite text from an argument or stdin and print the result
//   - actions  List rewrite actions and translation languages
//   - ping     Check that the configured AI service is reachable
//
// # Implementation
//
// The root command loads the config file, overlays the API key from the
// environment and applies flags before any subcommand runs. Logs go to a
// file because the editor owns the terminal.
package commands
