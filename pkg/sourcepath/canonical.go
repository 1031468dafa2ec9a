package sourcepath

import (
	"path/filepath"
	"sort"
	"strings"
)

// Canonical is a file path using forward slashes regardless of platform.
// Example: "src/org/example/Main.java"
type Canonical string

// Canonicalize converts every backslash in p into a forward slash. Unix paths
// are unchanged; mixed separators are converted naively.
func Canonicalize(p string) Canonical {
	return Canonical(strings.ReplaceAll(p, `\`, "/"))
}

// String returns the path as a string
func (c Canonical) String() string {
	return string(c)
}

// Native returns the path with the platform's separator, suitable for opening.
func (c Canonical) Native() string {
	return filepath.FromSlash(string(c))
}

// Contains reports whether segment occurs anywhere in the path.
func (c Canonical) Contains(segment string) bool {
	return strings.Contains(string(c), segment)
}

// sortKey folds ASCII letters to upper case so ordering does not depend on
// the case sensitivity of the filesystem that produced it. Other bytes,
// including every byte of a multi-byte UTF-8 sequence, are left alone and
// compare by value.
func (c Canonical) sortKey() string {
	key := []byte(c)
	for i, b := range key {
		if 'a' <= b && b <= 'z' {
			key[i] = b - ('a' - 'A')
		}
	}
	return string(key)
}

// Less orders paths by their ASCII upper-cased form.
func Less(a, b Canonical) bool {
	return a.sortKey() < b.sortKey()
}

// Sort orders paths in place with Less. The sort is stable: paths that differ
// only by case keep their relative input order.
func Sort(paths []Canonical) {
	sort.SliceStable(paths, func(i, j int) bool {
		return Less(paths[i], paths[j])
	})
}
