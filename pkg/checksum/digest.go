package checksum

import (
	"crypto/md5"
	"encoding/hex"
	"hash"
	"io"
	"os"

	scerr "github.com/utkarsh5026/pkginfo/pkg/common/err"
)

const pkgName = "checksum"

// Digest is a lowercase hex MD5 digest (32 characters).
// Example: "9dd4e461268c8034f5c8564e155c67a6"
type Digest string

const (
	// DigestLength is the length of a digest in hex characters.
	DigestLength = 32

	// EmptyDigest is the digest of zero bytes, and therefore the aggregate
	// of an empty file list.
	EmptyDigest Digest = "d41d8cd98f00b204e9800998ecf8427e"

	// BlockSize is the read size used when hashing files.
	BlockSize = 1 << 20
)

// String returns the digest as a string
func (d Digest) String() string {
	return string(d)
}

// IsValid reports whether d has the length and alphabet of an MD5 hex digest.
func (d Digest) IsValid() bool {
	if len(d) != DigestLength {
		return false
	}
	for _, c := range d {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}

func digestOf(h hash.Hash) Digest {
	return Digest(hex.EncodeToString(h.Sum(nil)))
}

// Bytes returns the MD5 digest of data.
func Bytes(data []byte) Digest {
	sum := md5.Sum(data)
	return Digest(hex.EncodeToString(sum[:]))
}

// Reader hashes everything r yields, reading BlockSize bytes at a time.
func Reader(r io.Reader) (Digest, error) {
	h := md5.New()
	buf := make([]byte, BlockSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", err
	}
	return digestOf(h), nil
}

// File hashes the whole content of the file at path in binary mode.
func File(path string) (Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", scerr.New(pkgName, scerr.CodeIO, "open", path, err)
	}
	defer f.Close()

	d, err := Reader(f)
	if err != nil {
		return "", scerr.New(pkgName, scerr.CodeIO, "read", path, err)
	}
	return d, nil
}
