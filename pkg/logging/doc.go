// Package logging wires zerolog for pagesmith.
//
// Verbosity maps to levels: 0 warn, 1 info, 2 debug, 3+ trace. Console output
// goes to stderr; a copy is appended to $XDG_STATE_HOME/pagesmith/pagesmith.log
// when the state directory is writable.
package logging
