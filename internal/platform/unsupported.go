//go:build !darwin || !cgo

package platform

// Pointer events need Core Graphics through cgo, so this build registers no
// backends and New reports ErrUnavailable for every name.
const hint = " (pointer events need darwin with cgo)"
