package driver

import (
	"crypto/sha256"
	"fmt"

	"doclint/internal/config"
	"doclint/internal/version"
)

// Digest identifies a cached result.
type Digest [sha256.Size]byte

// combineDigest: H(content || dep1 || dep2 ...). deps уже в детерминированном порядке.
func combineDigest(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// configDigest covers everything that changes rule output besides the
// bundle itself: rule settings and the linter version.
func configDigest(cfg config.Config) Digest {
	cfg.Path = ""
	// %#v prints maps with sorted keys
	return sha256.Sum256(fmt.Appendf(nil, "%s\x00%#v", version.Version, cfg))
}

// CacheKey is the key a bundle's findings are stored under.
func CacheKey(bundle Digest, cfg config.Config) Digest {
	return combineDigest(bundle, configDigest(cfg))
}
