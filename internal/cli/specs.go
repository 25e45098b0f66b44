// internal/cli/specs.go
package cli

import (
	"strings"

	"kreads/internal/filter"

	"github.com/pkg/errors"
)

// ParseSingleSpec parses the `-1`/`-i` form `<input>:<output_stem>`.
func ParseSingleSpec(spec string, mode filter.Mode) (filter.Input, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return filter.Input{}, errors.Errorf("malformed input %q (expected <input>:<out_base>)", spec)
	}
	return filter.Input{Mode: mode, File1: parts[0], Stem: parts[1]}, nil
}

// ParsePairSpec parses the `-2` form `<input1>:<input2>:<output_stem>`.
func ParsePairSpec(spec string) (filter.Input, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return filter.Input{}, errors.Errorf("malformed input %q (expected <input1>:<input2>:<out_base>)", spec)
	}
	return filter.Input{Mode: filter.SplitPair, File1: parts[0], File2: parts[1], Stem: parts[2]}, nil
}
