// Package memory provides in-process implementations of the store interfaces.
// It is the default backend for local runs and the backend of most tests;
// data does not survive a restart.
package memory
