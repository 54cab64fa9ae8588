// Package process terminates browser process trees left behind by render
// strategies.
package process
