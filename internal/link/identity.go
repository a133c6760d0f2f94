package link

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Hash generates a signature of the endpoint a Record points at.
// Two links that differ only in their display name hash the same.
func (r *Record) Hash() string {
	var parts []string

	parts = append(parts, string(r.Kind))
	parts = append(parts, strings.ToLower(r.Server))
	parts = append(parts, strconv.Itoa(r.Port))
	parts = append(parts, r.Credential)

	// Network: Empty implies "tcp"
	network := strings.ToLower(r.Network)
	if network == "" {
		network = "tcp"
	}
	parts = append(parts, network)
	parts = append(parts, strings.ToLower(r.Security))
	parts = append(parts, r.ServerName)

	if r.WSOpts != nil {
		parts = append(parts, r.WSOpts.Path, r.WSOpts.Host)
	} else {
		parts = append(parts, "", "")
	}

	parts = append(parts, r.Flow)
	parts = append(parts, r.RealityPublicKey)
	parts = append(parts, r.RealityShortID)

	signature := strings.Join(parts, "|")
	hash := sha256.Sum256([]byte(signature))
	return hex.EncodeToString(hash[:])
}
