package model

// Settings is the opaque user settings mapping. The persistence layer
// enforces no schema; values round-trip through JSON untouched.
type Settings map[string]any
