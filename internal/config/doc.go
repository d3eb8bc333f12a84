// Package config defines the format-agnostic model of an orbitgraph
// configuration file and the Loader interface that produces it.
//
// Every field of File is optional. A nil pointer means "not set in the file",
// which lets the command line layer tell a value the user wrote apart from a
// zero value, and apply its own precedence rules on top. Concrete loaders live
// in separate packages; hcl_adapter provides the HCL one.
package config
