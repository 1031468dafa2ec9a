package checksum

import (
	"crypto/md5"
	"hash"

	"github.com/utkarsh5026/pkginfo/pkg/common/logger"
	"github.com/utkarsh5026/pkginfo/pkg/sourcepath"
)

// Accumulator folds per-file digests into one aggregate. It hashes the hex
// text of each digest, not the file bytes, so the result depends on the
// content of every file and on the order the digests are added.
type Accumulator struct {
	h hash.Hash
}

// NewAccumulator returns an empty accumulator. Its Sum is EmptyDigest.
func NewAccumulator() *Accumulator {
	return &Accumulator{h: md5.New()}
}

// Add feeds the bytes of d's hex string into the running hash.
func (a *Accumulator) Add(d Digest) {
	a.h.Write([]byte(d))
}

// Sum returns the aggregate digest so far. Further Adds are allowed.
func (a *Accumulator) Sum() Digest {
	return digestOf(a.h)
}

// Entry is a checksummed file and its individual digest.
type Entry struct {
	Path   sourcepath.Canonical
	Digest Digest
}

// Result is the outcome of Aggregate.
type Result struct {
	Digest  Digest
	Entries []Entry
}

// Aggregate hashes each file in the given order and accumulates the digests.
// Callers are responsible for passing paths in their canonical sorted order;
// open resolves a canonical path to something os.Open accepts.
func Aggregate(paths []sourcepath.Canonical, open func(sourcepath.Canonical) string) (Result, error) {
	if open == nil {
		open = sourcepath.Canonical.Native
	}

	acc := NewAccumulator()
	entries := make([]Entry, 0, len(paths))
	for _, p := range paths {
		d, err := File(open(p))
		if err != nil {
			return Result{}, err
		}
		logger.Debug("hashed source file", "path", p.String(), "md5", d.String())
		acc.Add(d)
		entries = append(entries, Entry{Path: p, Digest: d})
	}

	return Result{Digest: acc.Sum(), Entries: entries}, nil
}
