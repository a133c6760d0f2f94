package link

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func vmessLink(t *testing.T, payload string) string {
	t.Helper()
	return "vmess://" + base64.StdEncoding.EncodeToString([]byte(payload))
}

func TestParseVMess(t *testing.T) {
	raw := vmessLink(t, `{"ps":"A","add":"1.2.3.4","port":443,"id":"u1","net":"ws","path":"/x","host":"h.com"}`)

	r, err := Parse(raw)
	require.NoError(t, err)
	require.Equal(t, KindVMess, r.Kind)
	require.Equal(t, "A", r.Name)
	require.Equal(t, "1.2.3.4", r.Server)
	require.Equal(t, 443, r.Port)
	require.Equal(t, "u1", r.Credential)
	require.Equal(t, "ws", r.Network)
	require.Equal(t, "auto", r.Cipher)
	require.NotNil(t, r.WSOpts)
	require.Equal(t, "/x", r.WSOpts.Path)
	require.Equal(t, "h.com", r.WSOpts.Host)
	require.Equal(t, "h.com", r.ServerName)
	require.True(t, r.SkipCertVerify)
	require.False(t, r.TLS)
}

func TestParseVMess_Defaults(t *testing.T) {
	raw := vmessLink(t, `{"add":"example.com","id":"u1","path":"ws","sni":"SNI.Example.COM","host":"Host.Example.com"}`)

	r, err := ParseVMess(raw)
	require.NoError(t, err)
	require.Equal(t, "", r.Name)
	require.Equal(t, DefaultPort, r.Port)
	require.Equal(t, "ws", r.Network)
	require.Equal(t, "/ws", r.WSOpts.Path)
	require.Equal(t, "host.example.com", r.WSOpts.Host)
	require.Equal(t, "sni.example.com", r.ServerName)
}

func TestParseVMess_PortAndAlterIDAsStrings(t *testing.T) {
	raw := vmessLink(t, `{"ps":"s","add":"h","port":"8443","aid":"4","id":"u","net":"tcp","tls":"tls"}`)

	r, err := ParseVMess(raw)
	require.NoError(t, err)
	require.Equal(t, 8443, r.Port)
	require.Equal(t, 4, r.AlterID)
	require.Equal(t, "tcp", r.Network)
	require.Nil(t, r.WSOpts)
	require.True(t, r.TLS)
}

func TestParseVMess_TLSValues(t *testing.T) {
	cases := []struct {
		tls  string
		want bool
	}{
		{`"tls"`, true},
		{`"TLS"`, true},
		{`"1"`, true},
		{`true`, true},
		{`""`, false},
		{`"none"`, false},
		{`false`, false},
	}
	for _, tc := range cases {
		raw := vmessLink(t, `{"add":"h","id":"u","tls":`+tc.tls+`}`)
		r, err := ParseVMess(raw)
		require.NoError(t, err, tc.tls)
		require.Equal(t, tc.want, r.TLS, tc.tls)
	}
}

func TestParseVMess_InvalidPortDefaults(t *testing.T) {
	for _, port := range []string{`0`, `70000`, `"abc"`, `-1`} {
		raw := vmessLink(t, `{"add":"h","id":"u","port":`+port+`}`)
		r, err := ParseVMess(raw)
		require.NoError(t, err, port)
		require.Equal(t, DefaultPort, r.Port, port)
	}
}

func TestParseVMess_AlterIDOutOfRange(t *testing.T) {
	for _, aid := range []string{`1e30`, `-3`, `1.5`, `"70000"`, `"1e30"`, `"x"`, `null`} {
		raw := vmessLink(t, `{"add":"h","id":"u","aid":`+aid+`}`)
		r, err := ParseVMess(raw)
		require.NoError(t, err, aid)
		require.Equal(t, 0, r.AlterID, aid)
	}

	r, err := ParseVMess(vmessLink(t, `{"add":"h","id":"u","aid":64}`))
	require.NoError(t, err)
	require.Equal(t, 64, r.AlterID)
}

func TestParseVMess_UnpaddedWithFragment(t *testing.T) {
	payload := base64.RawStdEncoding.EncodeToString([]byte(`{"ps":"B","add":"h","port":80,"id":"u"}`))
	r, err := Parse("vmess://" + payload + "#ignored")
	require.NoError(t, err)
	require.Equal(t, "B", r.Name)
	require.Equal(t, 80, r.Port)
}

func TestParseVMess_URLSafeAlphabet(t *testing.T) {
	payload := base64.URLEncoding.EncodeToString([]byte(`{"ps":"??>>","add":"h","id":"u"}`))
	r, err := ParseVMess("vmess://" + payload)
	require.NoError(t, err)
	require.Equal(t, "??>>", r.Name)
}

func TestParseVMess_Errors(t *testing.T) {
	_, err := Parse("vmess://!!!not-base64!!!")
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, ReasonBadBase64, pe.Reason)

	_, err = Parse(vmessLink(t, `{"ps":`))
	require.True(t, errors.As(err, &pe))
	require.Equal(t, ReasonBadJSON, pe.Reason)
	require.Contains(t, err.Error(), "vmess")
}

func TestParseVLESS(t *testing.T) {
	r, err := Parse("vless://uuid@host:443?type=ws&security=tls&sni=s.com&path=/y&host=h2.com#MyNode")
	require.NoError(t, err)
	require.Equal(t, KindVLESS, r.Kind)
	require.Equal(t, "MyNode", r.Name)
	require.Equal(t, "uuid", r.Credential)
	require.Equal(t, "host", r.Server)
	require.True(t, r.TLS)
	require.Equal(t, "s.com", r.ServerName)
	require.NotNil(t, r.WSOpts)
	require.Equal(t, "/y", r.WSOpts.Path)
	require.Equal(t, "h2.com", r.WSOpts.Host)
}

func TestParseVLESS_Defaults(t *testing.T) {
	r, err := Parse("vless://uuid@Example.com")
	require.NoError(t, err)
	require.Equal(t, DefaultPort, r.Port)
	require.Equal(t, "tcp", r.Network)
	require.False(t, r.TLS)
	require.Equal(t, "example.com", r.ServerName)
	require.Nil(t, r.WSOpts)
	require.Equal(t, "VLESS Example.com:443", r.Name)
}

func TestParseVLESS_WSDefaultsFromSNI(t *testing.T) {
	r, err := Parse("vless://uuid@host:8080?type=ws&security=reality&sni=SNI.com&pbk=key&sid=ab&flow=xtls-rprx-vision#A%20B")
	require.NoError(t, err)
	require.Equal(t, "A B", r.Name)
	require.Equal(t, 8080, r.Port)
	require.True(t, r.TLS)
	require.Equal(t, "/", r.WSOpts.Path)
	require.Equal(t, "sni.com", r.WSOpts.Host)
	require.Equal(t, "key", r.RealityPublicKey)
	require.Equal(t, "ab", r.RealityShortID)
	require.Equal(t, "xtls-rprx-vision", r.Flow)
}

func TestParseURI_LenientFragment(t *testing.T) {
	cases := map[string]string{
		"vless://u@h:1#100%":            "100%",
		"vless://u@h:1#50%25%20off":     "50% off",
		"trojan://p@h:1#a%zz%20b%":      "a%zz b%",
		"trojan://p@h:1#%F0%9F%9A%80 %": "🚀 %",
		"vless://u@h:1#a#b":             "a#b",
	}
	for raw, want := range cases {
		r, err := Parse(raw)
		require.NoError(t, err, raw)
		require.Equal(t, want, r.Name, raw)
	}
}

func TestParseVLESS_SecurityValues(t *testing.T) {
	for sec, want := range map[string]bool{"tls": true, "reality": true, "xtls": true, "none": false, "": false} {
		r, err := ParseVLESS("vless://u@h:1?security=" + sec)
		require.NoError(t, err, sec)
		require.Equal(t, want, r.TLS, sec)
	}
}

func TestParseVLESS_Errors(t *testing.T) {
	var pe *ParseError

	_, err := Parse("vless://host-without-user:443")
	require.True(t, errors.As(err, &pe))
	require.Equal(t, ReasonBadURI, pe.Reason)

	_, err = Parse("vless://u@host:port")
	require.True(t, errors.As(err, &pe))
	require.Equal(t, ReasonBadURI, pe.Reason)
}

func TestParseTrojan(t *testing.T) {
	r, err := Parse("trojan://pwd@host:443?security=tls&type=tcp")
	require.NoError(t, err)
	require.Equal(t, KindTrojan, r.Kind)
	require.Equal(t, "pwd", r.Credential)
	require.Equal(t, "tcp", r.Network)
	require.True(t, r.TLS)
	require.Nil(t, r.WSOpts)
	require.Equal(t, "TROJAN host:443", r.Name)
}

func TestParseTrojan_SecurityDefaultsToTLS(t *testing.T) {
	r, err := Parse("trojan://p%40ss@host")
	require.NoError(t, err)
	require.Equal(t, "p@ss", r.Credential)
	require.True(t, r.TLS)

	r, err = Parse("trojan://pwd@host?security=none")
	require.NoError(t, err)
	require.False(t, r.TLS)

	r, err = Parse("trojan://pwd@host?security=TLS")
	require.NoError(t, err)
	require.False(t, r.TLS)
}

func TestParseTrojan_WS(t *testing.T) {
	r, err := Parse("TROJAN://pwd@host:2053?type=ws&path=ws&host=CDN.Example.com#T")
	require.NoError(t, err)
	require.Equal(t, "T", r.Name)
	require.Equal(t, "/ws", r.WSOpts.Path)
	require.Equal(t, "cdn.example.com", r.WSOpts.Host)
	require.Equal(t, "host", r.ServerName)
}

func TestParse_UnsupportedScheme(t *testing.T) {
	for _, raw := range []string{"foo://bar", "not a link", "ss://abc@h:1"} {
		r, err := Parse(raw)
		require.Nil(t, r)
		require.ErrorIs(t, err, ErrUnsupportedScheme, raw)
	}
}

func TestParse_Properties(t *testing.T) {
	links := []string{
		vmessLink(t, `{"add":"H.com","id":"u","port":0,"path":"","host":"MiXeD.Com"}`),
		vmessLink(t, `{"add":"h","id":"u","net":"ws","path":"/already"}`),
		"vless://u@h?type=ws&path=&host=UPPER.COM",
		"vless://u@h:65535?type=ws&path=nested/dir&sni=S.COM",
		"trojan://p@h:1?type=ws",
		"trojan://p@h:99999?type=ws&sni=Trojan.SNI",
	}
	for _, raw := range links {
		r, err := Parse(raw)
		require.NoError(t, err, raw)
		require.Equal(t, Kind(Scheme(raw)), r.Kind, raw)
		require.GreaterOrEqual(t, r.Port, 1, raw)
		require.LessOrEqual(t, r.Port, 65535, raw)
		require.Equal(t, strings.ToLower(r.ServerName), r.ServerName, raw)
		if r.WSOpts != nil {
			require.True(t, strings.HasPrefix(r.WSOpts.Path, "/"), raw)
			require.Equal(t, strings.ToLower(r.WSOpts.Host), r.WSOpts.Host, raw)
		}
	}
}

func TestRecordHash(t *testing.T) {
	a, err := Parse("vless://u@h:443?type=ws&path=/p#one")
	require.NoError(t, err)
	b, err := Parse("vless://u@h:443?type=ws&path=/p#two")
	require.NoError(t, err)
	c, err := Parse("vless://u@h:443?type=ws&path=/q#one")
	require.NoError(t, err)

	require.Equal(t, a.Hash(), b.Hash())
	require.NotEqual(t, a.Hash(), c.Hash())
}
