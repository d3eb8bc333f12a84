// Package orbit defines the orbit record and the line grammar that produces it.
//
// A line has the form `<target>)<object>` and states that the object's orbit
// is centered on the target. Both identifiers are opaque, non-empty tokens
// that contain neither `)` nor a newline.
package orbit
