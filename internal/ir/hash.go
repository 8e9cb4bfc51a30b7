package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainGraph is the domain-separation prefix for content-addressed graph
// identity. The version suffix allows the hashing scheme itself to evolve
// without colliding with hashes computed under an earlier scheme.
const DomainGraph = "dcr/graph/v1"

// hashWithDomain computes SHA-256 over domain, a null separator, and data.
// The separator prevents a crafted data prefix from masquerading as part
// of the domain string.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// GraphHash computes a content-addressed identity for g from its canonical
// JSON encoding, including its current marking: two graphs hash identically
// iff every event, relation, role/label mapping, and marking set matches.
// Callers that want an identity independent of run state should hash a
// graph still at its freshly-compiled initial marking.
func GraphHash(g *Graph) (string, error) {
	canonical, err := MarshalCanonical(g)
	if err != nil {
		return "", fmt.Errorf("GraphHash: marshal: %w", err)
	}
	return hashWithDomain(DomainGraph, canonical), nil
}
