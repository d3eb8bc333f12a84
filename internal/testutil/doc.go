// Package testutil holds fixtures and helpers shared by the test suites of
// the pipeline packages. It must not be imported by non-test code.
package testutil
