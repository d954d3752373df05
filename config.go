package gr2

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Options tunes the decoder. Use DefaultOptions or LoadOptions. When
// decoding, a MaxDepth of zero or less (as in the zero value) is replaced
// by DefaultOptions' MaxDepth; LoadOptions rejects it.
type Options struct {
	// MaxDepth bounds the recursion depth of the element decoder
	// (§5 of the spec recommends 256). Exceeding it returns
	// ErrRecursionLimit instead of exhausting the goroutine stack on
	// adversarial or cyclic input.
	MaxDepth int `json:"maxDepth"`
}

// DefaultOptions returns the recommended tuning: a 256-level recursion
// cap, matching the spec's default recommendation.
func DefaultOptions() Options {
	return Options{MaxDepth: 256}
}

// LoadOptions reads Options from a YAML file. This lets a host embedding
// the decoder in a larger pipeline tune the recursion limit without a
// code change.
func LoadOptions(path string) (Options, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("gr2: load options: %w", err)
	}
	opts := DefaultOptions()
	if err := yaml.Unmarshal(raw, &opts); err != nil {
		return Options{}, fmt.Errorf("gr2: parse options: %w", err)
	}
	if opts.MaxDepth <= 0 {
		return Options{}, fmt.Errorf("gr2: maxDepth must be positive, got %d", opts.MaxDepth)
	}
	return opts, nil
}
