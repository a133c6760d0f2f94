package link

// Kind is the link scheme a Record was parsed from.
type Kind string

const (
	KindVMess  Kind = "vmess"
	KindVLESS  Kind = "vless"
	KindTrojan Kind = "trojan"
)

const DefaultPort = 443

// Record is one proxy endpoint parsed from a single link.
// It is the DTO between raw URIs and the rendered documents.
type Record struct {
	Name string
	Kind Kind
	Raw  string

	// Connection Details
	Server string
	Port   int

	// Authentication
	Credential string // UUID for vmess/vless, password for trojan
	AlterID    int    // vmess only
	Cipher     string // vmess only

	// Security (TLS/REALITY)
	Security       string // raw security value from the link
	TLS            bool
	SkipCertVerify bool
	ServerName     string // lower-cased SNI
	Fingerprint    string

	// REALITY / XTLS (vless only)
	Flow             string
	RealityPublicKey string
	RealityShortID   string

	// Transport
	UDP     bool
	Network string            // tcp, ws, grpc, ...
	WSOpts  *TransportOptions // only set for ws
}

// TransportOptions carries the websocket settings of a Record.
type TransportOptions struct {
	Path string // always starts with "/"
	Host string // lower-cased Host header
}
