package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainNetwork = "pulsenet/network/v1"
	DomainTrace   = "pulsenet/trace/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// NetworkHash computes the content-addressed identity of a network.
// Two networks hash equal iff they declare the same modules, kinds and
// destinations in the same order.
func NetworkHash(n Network) (string, error) {
	canonical, err := MarshalCanonical(n.CanonicalMap())
	if err != nil {
		return "", fmt.Errorf("NetworkHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainNetwork, canonical), nil
}

// TraceHash computes the identity of a rendered delivery trace.
func TraceHash(lines []string) (string, error) {
	canonical, err := MarshalCanonical(lines)
	if err != nil {
		return "", fmt.Errorf("TraceHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainTrace, canonical), nil
}

// MustNetworkHash is like NetworkHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustNetworkHash(n Network) string {
	h, err := NetworkHash(n)
	if err != nil {
		panic(err)
	}
	return h
}
