// Package emulation runs an emulation session on behalf of the program
// entry point. It parses the command line into an Environment, creates the
// core, the driver and the scheduler, and connects them to either the GUI
// (Launch) or to a headless audio context (Headless).
package emulation
