package link

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Parse dispatches a raw link to the parser matching its scheme.
func Parse(raw string) (*Record, error) {
	raw = FixIllegalUrl(raw)
	scheme, _, ok := strings.Cut(raw, "://")
	if !ok {
		return nil, newParseError("", ReasonUnsupportedScheme, ErrUnsupportedScheme)
	}

	switch strings.ToLower(scheme) {
	case "vmess":
		return ParseVMess(raw)
	case "vless":
		return ParseVLESS(raw)
	case "trojan":
		return ParseTrojan(raw)
	default:
		return nil, newParseError(strings.ToLower(scheme), ReasonUnsupportedScheme, ErrUnsupportedScheme)
	}
}

// Scheme returns the lower-cased scheme of a link, or "" if it has none.
func Scheme(raw string) string {
	scheme, _, ok := strings.Cut(FixIllegalUrl(raw), "://")
	if !ok {
		return ""
	}
	return strings.ToLower(scheme)
}

// --- VMess ---
type vmessJSON struct {
	V    interface{} `json:"v"`
	Ps   string      `json:"ps"`
	Add  string      `json:"add"`
	Port interface{} `json:"port"`
	Id   string      `json:"id"`
	Aid  interface{} `json:"aid"`
	Scy  string      `json:"scy"`
	Net  string      `json:"net"`
	Type string      `json:"type"`
	Host string      `json:"host"`
	Path string      `json:"path"`
	Tls  interface{} `json:"tls"`
	Sni  string      `json:"sni"`
	Fp   string      `json:"fp"`
}

// ParseVMess decodes the legacy base64+JSON vmess link format.
func ParseVMess(raw string) (*Record, error) {
	raw = FixIllegalUrl(raw)
	_, payload, ok := strings.Cut(raw, "://")
	if !ok {
		return nil, newParseError(string(KindVMess), ReasonUnsupportedScheme, ErrUnsupportedScheme)
	}
	payload, _, _ = strings.Cut(payload, "#")

	jsonStr, err := DecodeBase64(payload)
	if err != nil {
		return nil, newParseError(string(KindVMess), ReasonBadBase64, err)
	}

	var v vmessJSON
	if err := json.Unmarshal([]byte(jsonStr), &v); err != nil {
		return nil, newParseError(string(KindVMess), ReasonBadJSON, err)
	}

	tls := truthyTLS(v.Tls)
	r := &Record{
		Name:           strings.TrimSpace(v.Ps),
		Kind:           KindVMess,
		Raw:            raw,
		Server:         strings.TrimSpace(v.Add),
		Port:           portOrDefault(v.Port),
		Credential:     v.Id,
		AlterID:        intOrZero(v.Aid),
		Cipher:         firstNonEmpty(v.Scy, "auto"),
		TLS:            tls,
		SkipCertVerify: true,
		UDP:            true,
		Network:        firstNonEmpty(v.Net, "ws"),
		ServerName:     strings.ToLower(firstNonEmpty(v.Sni, v.Host)),
		Fingerprint:    v.Fp,
	}
	if tls {
		r.Security = "tls"
	}

	if r.Network == "ws" {
		r.WSOpts = &TransportOptions{
			Path: ensurePath(v.Path),
			Host: strings.ToLower(firstNonEmpty(v.Host, v.Sni)),
		}
	}

	return r, nil
}

// Describe renders a short human readable summary used by status output.
func (r *Record) Describe() string {
	return fmt.Sprintf("%s %q %s:%d (%s)", r.Kind, r.Name, r.Server, r.Port, r.Network)
}
