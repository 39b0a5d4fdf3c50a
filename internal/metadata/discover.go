// ABOUTME: Descriptor discovery
// ABOUTME: Finds .textproto files in a test file directory
package metadata

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
)

// ErrNoDescriptors is returned when a directory holds no matching descriptors
var ErrNoDescriptors = errors.New("no textproto files found")

// FindDescriptors returns the sorted .textproto files in dir. When filter is
// non-nil only files whose base name matches it are kept. An empty directory
// is an error; a filter that matches nothing is not.
func FindDescriptors(dir string, filter *regexp.Regexp) ([]string, error) {
	pattern := filepath.Join(dir, "*.textproto")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDescriptors, pattern)
	}

	if filter != nil {
		kept := files[:0]
		for _, f := range files {
			if filter.MatchString(filepath.Base(f)) {
				kept = append(kept, f)
			}
		}
		files = kept
	}

	sort.Strings(files)
	return files, nil
}
