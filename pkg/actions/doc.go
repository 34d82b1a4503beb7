// Package actions provides the named receiver factories that wiring files
// refer to. Each factory turns an options map into a signal.Func bound to
// an Env.
package actions
