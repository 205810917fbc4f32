package step

import (
	"embed"
	"sort"
	"strings"

	"github.com/matzehuels/flowstep/pkg/errors"
)

// Canned example payloads walking through one complete run of the
// algorithm on a small four-node network (source S, sink T, two
// intermediates). step1 and step2 augment along S-A-T and S-B-T; step3 is
// the terminal step carrying the min-cut S-set.
//
//go:embed examples/*.json
var exampleFS embed.FS

// ExampleNames returns the canned example names in play order.
func ExampleNames() []string {
	entries, err := exampleFS.ReadDir("examples")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

// Example returns the raw payload of a canned example by name ("step1").
// Unknown names fail with ErrCodeExampleNotFound.
func Example(name string) ([]byte, error) {
	if err := errors.ValidateExampleName(name); err != nil {
		return nil, err
	}
	data, err := exampleFS.ReadFile("examples/" + name + ".json")
	if err != nil {
		return nil, errors.New(errors.ErrCodeExampleNotFound, "unknown example %q", name)
	}
	return data, nil
}
