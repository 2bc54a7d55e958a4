package vebmap

import "fmt"

// MissingKeyError is returned by the strict accessors (MustFetch, Replace,
// ReplaceFunc) when the requested key is absent.
type MissingKeyError struct {
	Key uint
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("vebmap: key %d not found", e.Key)
}

// OutOfRangeError is returned by Put-family operations when a key does not
// fit the map's current capacity, and by UpgradeCapacity when asked to
// shrink the universe.
type OutOfRangeError struct {
	Key      uint
	Capacity uint
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("vebmap: key %d out of range for capacity %d", e.Key, e.Capacity)
}
