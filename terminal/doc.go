// Package terminal presents a running workflow in a terminal.
//
// Screen collects what the engine's sinks receive and renders the button
// and the output lists with lipgloss. Host implements engine.Host over a
// reader and a writer: alerts wait for Enter, prompts read one line, and
// reload or close requests are recorded for the caller to act on.
package terminal
