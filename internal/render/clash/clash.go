package clash

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"subclash/internal/link"
	"subclash/internal/render"

	"gopkg.in/yaml.v3"
)

type Renderer struct{}

func (c *Renderer) Render(w io.Writer, records []link.Record, opts render.Options) error {
	group := opts.GroupNameOrDefault()
	bw := bufio.NewWriter(w)

	lines := []string{"proxies:"}
	for i := range records {
		lines = append(lines, proxyLines(&records[i])...)
	}

	lines = append(lines,
		"proxy-groups:",
		"- name: "+scalar(group),
		"  type: select",
		"  proxies:",
		"  - DIRECT",
	)
	for _, r := range records {
		lines = append(lines, "  - "+scalar(r.Name))
	}

	lines = append(lines,
		"rules:",
		"- "+scalar("MATCH,"+group),
	)

	if _, err := bw.WriteString(Preamble); err != nil {
		return err
	}
	if _, err := bw.WriteString(strings.Join(lines, "\n") + "\n"); err != nil {
		return err
	}
	return bw.Flush()
}

func proxyLines(r *link.Record) []string {
	out := []string{
		"- name: " + scalar(r.Name),
		"  type: " + string(r.Kind),
		"  server: " + scalar(r.Server),
		"  port: " + strconv.Itoa(r.Port),
	}

	switch r.Kind {
	case link.KindVMess:
		out = append(out,
			"  uuid: "+scalar(r.Credential),
			"  alterId: "+strconv.Itoa(r.AlterID),
			"  cipher: "+scalar(r.Cipher),
		)
	case link.KindVLESS:
		out = append(out, "  uuid: "+scalar(r.Credential))
	case link.KindTrojan:
		out = append(out, "  password: "+scalar(r.Credential))
	}

	out = append(out,
		"  tls: "+strconv.FormatBool(r.TLS),
		"  skip-cert-verify: "+strconv.FormatBool(r.SkipCertVerify),
		"  udp: "+strconv.FormatBool(r.UDP),
		"  network: "+scalar(r.Network),
	)

	if r.Flow != "" {
		out = append(out, "  flow: "+scalar(r.Flow))
	}
	if r.Fingerprint != "" {
		out = append(out, "  client-fingerprint: "+scalar(r.Fingerprint))
	}
	if r.RealityPublicKey != "" {
		out = append(out, "  reality-opts:", "    public-key: "+scalar(r.RealityPublicKey))
		if r.RealityShortID != "" {
			out = append(out, "    short-id: "+scalar(r.RealityShortID))
		}
	}

	if r.WSOpts != nil {
		out = append(out,
			"  ws-opts:",
			"    path: "+scalar(r.WSOpts.Path),
		)
		if r.WSOpts.Host != "" {
			out = append(out,
				"    headers:",
				"      Host: "+scalar(r.WSOpts.Host),
			)
		}
	}

	if r.ServerName != "" {
		out = append(out, "  servername: "+scalar(r.ServerName))
	}
	return out
}

// scalar returns s as a plain YAML scalar when it reads back unchanged and
// as a double-quoted scalar otherwise.
func scalar(s string) string {
	if strings.IndexFunc(s, needsEscape) < 0 && utf8.ValidString(s) {
		var probe map[string]interface{}
		if err := yaml.Unmarshal([]byte("v: "+s), &probe); err == nil {
			if v, ok := probe["v"].(string); ok && v == s {
				return s
			}
		}
	}
	return yamlDQ(s)
}

// needsEscape reports runes that may not appear raw in a YAML scalar, plus
// the ones a reader would fold as line breaks.
func needsEscape(r rune) bool {
	switch {
	case r < 0x20, r == 0x7f:
		return true
	case r >= 0x80 && r <= 0x9f:
		return true
	case r == 0x2028, r == 0x2029, r == 0xfeff, r == 0xfffe, r == 0xffff:
		return true
	}
	return false
}

func yamlDQ(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		switch {
		case r == utf8.RuneError && size == 1:
			b.WriteString(`\uFFFD`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '"':
			b.WriteString(`\"`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == 0:
			b.WriteString(`\0`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02X`, r)
		case needsEscape(r):
			fmt.Fprintf(&b, `\u%04X`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func init() {
	render.Register("clash", func() render.Renderer { return &Renderer{} })
}
