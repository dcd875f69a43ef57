package config

import "os"

// ExpandEnv expands ${VAR} and $VAR references in raw YAML bytes using the
// standard library's shell-style expansion. Missing variables expand to
// the empty string; Validate is expected to catch any required field that
// ends up empty.
func ExpandEnv(data []byte) []byte {
	return []byte(os.ExpandEnv(string(data)))
}
