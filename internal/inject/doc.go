// Package inject sets environment variables in a running terminal
// multiplexer session.
//
// An argument of the form NAME=VALUE sets NAME to VALUE.
// A bare NAME sends the value of NAME in the current environment.
// Only windows created after the change see the new value;
// shells already running in the session are unaffected.
package inject
