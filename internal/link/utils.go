package link

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DecodeBase64 attempts to decode standard and URL-safe base64 strings,
// automatically fixing missing padding.
func DecodeBase64(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	// Fix padding
	if n := len(s) % 4; n != 0 {
		s += strings.Repeat("=", 4-n)
	}

	b, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return string(b), nil
	}

	b, err = base64.URLEncoding.DecodeString(s)
	if err == nil {
		return string(b), nil
	}

	return "", err
}

// FixIllegalUrl cleans up whitespace and stray line breaks in pasted links.
func FixIllegalUrl(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	return s
}

// ensurePath returns "/" for an empty path and forces a leading slash otherwise.
func ensurePath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		return "/" + p
	}
	return p
}

// portOrDefault parses a port that may arrive as a JSON number, a JSON string
// or a URL port component. Anything outside 1..65535 becomes DefaultPort.
func portOrDefault(v interface{}) int {
	var s string
	switch t := v.(type) {
	case nil:
		return DefaultPort
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		s = t.String()
	case string:
		s = t
	default:
		s = fmt.Sprintf("%v", t)
	}
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || port < 1 || port > 65535 {
		return DefaultPort
	}
	return port
}

// intOrZero is portOrDefault's lenient sibling for counters such as alterId.
// Negative, fractional or out of range values become 0.
func intOrZero(v interface{}) int {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		f = n
	default:
		return 0
	}
	if f < 0 || f > math.MaxUint16 || f != math.Trunc(f) {
		return 0
	}
	return int(f)
}

// truthyTLS reports whether a vmess "tls" field enables TLS.
func truthyTLS(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "tls" || t == "TLS" || t == "1"
	case float64:
		return t == 1
	}
	return false
}

// firstNonEmpty returns the first argument that is not blank.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
