package keyword

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/slok/tokactl/internal/model"
)

var nameRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// ParseSpecs parses `NAME=VALUE` keyword specs. A spec with only a name takes
// its value from the environment variable with the same name. Later specs
// override earlier ones.
func ParseSpecs(specs []string) (map[string]string, error) {
	kws := make(map[string]string, len(specs))

	for _, spec := range specs {
		if spec == "" {
			return nil, fmt.Errorf("keyword spec cannot be empty: %w", model.ErrNotValid)
		}

		if name, value, ok := strings.Cut(spec, "="); ok {
			if !isValidName(name) {
				return nil, fmt.Errorf("invalid keyword name %q: %w", name, model.ErrNotValid)
			}

			kws[name] = value
			continue
		}

		if !isValidName(spec) {
			return nil, fmt.Errorf("invalid keyword name %q: %w", spec, model.ErrNotValid)
		}

		value, ok := os.LookupEnv(spec)
		if !ok {
			return nil, fmt.Errorf("environment variable %q is not set: %w", spec, model.ErrNotValid)
		}

		kws[spec] = value
	}

	return kws, nil
}

func isValidName(n string) bool {
	return nameRegexp.MatchString(n)
}
