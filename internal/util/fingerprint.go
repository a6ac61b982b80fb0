package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Fingerprint computes a stable hash for a finding key
func Fingerprint(ruleID, contract, function string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s", ruleID, contract, function)
	return hex.EncodeToString(h.Sum(nil))
}
