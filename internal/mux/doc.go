// Package mux sends control commands to a running terminal multiplexer
// session.
//
// It provides a [Controller] interface with [Screen] and [Tmux]
// implementations that shell out to the corresponding binaries.
// Commands are delivered to the default session of the multiplexer:
// the one the calling process runs inside, if any.
package mux
