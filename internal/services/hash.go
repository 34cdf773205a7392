// Package services contains the business orchestration on top of the
// repositories: the aggregator, the registry, job listings and the schedule
// controller.
package services

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHash computes the stable content fingerprint of a posting. Identical
// inputs always produce the identical digest; any change to title or
// description changes it, so edited postings are seen as "observed again with
// new content" rather than silently merged.
//
// The hash assists dedup only. (externalID, platform) remains the authoritative
// identity of a posting.
func ContentHash(externalID, platform, title, description, companySlug string) string {
	h := sha256.New()
	for _, field := range []string{externalID, platform, title, description, companySlug} {
		h.Write([]byte(field))
		h.Write([]byte{0x1f}) // unit separator so field boundaries can't alias
	}
	return hex.EncodeToString(h.Sum(nil))
}
