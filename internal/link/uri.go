package link

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var tlsSecurities = map[string]bool{
	"tls":     true,
	"reality": true,
	"xtls":    true,
}

// ParseVLESS parses vless://uuid@host:port?query#name links.
func ParseVLESS(raw string) (*Record, error) {
	u, err := parseURI(KindVLESS, raw)
	if err != nil {
		return nil, err
	}
	q := u.Query()

	r := newURIRecord(KindVLESS, raw, u)
	r.Credential = u.User.Username()
	r.Network = firstNonEmpty(q.Get("type"), "tcp")
	r.Security = strings.ToLower(q.Get("security"))
	r.TLS = tlsSecurities[r.Security]
	r.Flow = q.Get("flow")
	r.Fingerprint = q.Get("fp")
	if r.Security == "reality" {
		r.RealityPublicKey = q.Get("pbk")
		r.RealityShortID = q.Get("sid")
	}
	applyTransport(r, q, u.Hostname())

	if r.Name == "" {
		r.Name = fmt.Sprintf("VLESS %s:%d", r.Server, r.Port)
	}
	return r, nil
}

// ParseTrojan parses trojan://password@host:port?query#name links.
func ParseTrojan(raw string) (*Record, error) {
	u, err := parseURI(KindTrojan, raw)
	if err != nil {
		return nil, err
	}
	q := u.Query()

	r := newURIRecord(KindTrojan, raw, u)
	r.Credential = u.User.Username()
	if pass, ok := u.User.Password(); ok {
		r.Credential += ":" + pass
	}
	r.Network = firstNonEmpty(q.Get("type"), "tcp")
	r.Security = firstNonEmpty(q.Get("security"), "tls")
	r.TLS = r.Security == "tls"
	r.Fingerprint = q.Get("fp")
	applyTransport(r, q, u.Hostname())

	if r.Name == "" {
		r.Name = fmt.Sprintf("TROJAN %s:%d", r.Server, r.Port)
	}
	return r, nil
}

func parseURI(kind Kind, raw string) (*url.URL, error) {
	raw, fragment, _ := strings.Cut(FixIllegalUrl(raw), "#")
	u, err := url.Parse(raw)
	if err != nil {
		return nil, newParseError(string(kind), ReasonBadURI, err)
	}
	u.Fragment = unescapeFragment(fragment)
	if u.User == nil {
		return nil, newParseError(string(kind), ReasonBadURI, errors.New("missing credential"))
	}
	if u.Hostname() == "" {
		return nil, newParseError(string(kind), ReasonBadURI, errors.New("missing host"))
	}
	return u, nil
}

// unescapeFragment percent-decodes a link name. Stray '%' signs that do not
// start a valid escape are kept as they are.
func unescapeFragment(s string) string {
	if name, err := url.PathUnescape(s); err == nil {
		return name
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	}
	return c - 'A' + 10
}

// newURIRecord fills the fields VLESS and Trojan links share.
func newURIRecord(kind Kind, raw string, u *url.URL) *Record {
	return &Record{
		Name:           strings.TrimSpace(u.Fragment),
		Kind:           kind,
		Raw:            FixIllegalUrl(raw),
		Server:         u.Hostname(),
		Port:           portOrDefault(u.Port()),
		SkipCertVerify: true,
		UDP:            true,
	}
}

// applyTransport resolves sni, host header and ws path from the query.
func applyTransport(r *Record, q url.Values, hostname string) {
	sni := strings.ToLower(firstNonEmpty(q.Get("sni"), q.Get("peer"), hostname))
	r.ServerName = sni

	if r.Network == "ws" {
		r.WSOpts = &TransportOptions{
			Path: ensurePath(q.Get("path")),
			Host: strings.ToLower(firstNonEmpty(q.Get("host"), sni)),
		}
	}
}
