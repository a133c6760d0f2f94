package xray

import (
	"encoding/json"
	"fmt"
	"io"

	"subclash/internal/link"
	"subclash/internal/render"

	"github.com/xtls/xray-core/infra/conf"
)

type Renderer struct{}

type document struct {
	Remarks   string                      `json:"remarks,omitempty"`
	Outbounds []conf.OutboundDetourConfig `json:"outbounds"`
}

// Render writes an Xray config holding one outbound per record followed by a
// freedom outbound tagged "direct".
func (x *Renderer) Render(w io.Writer, records []link.Record, opts render.Options) error {
	doc := document{Remarks: opts.GroupNameOrDefault()}

	for i := range records {
		out, err := ToOutbound(&records[i])
		if err != nil {
			return err
		}
		doc.Outbounds = append(doc.Outbounds, *out)
	}

	direct := json.RawMessage(`{}`)
	doc.Outbounds = append(doc.Outbounds, conf.OutboundDetourConfig{
		Tag:      "direct",
		Protocol: "freedom",
		Settings: &direct,
	})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

// ToOutbound converts a Record into an Xray outbound config.
func ToOutbound(r *link.Record) (*conf.OutboundDetourConfig, error) {
	var settings json.RawMessage

	switch r.Kind {
	case link.KindVMess:
		settings = buildVMess(r)
	case link.KindVLESS:
		settings = buildVLESS(r)
	case link.KindTrojan:
		settings = buildTrojan(r)
	default:
		return nil, fmt.Errorf("protocol conversion not implemented: %s", r.Kind)
	}

	return &conf.OutboundDetourConfig{
		Tag:           r.Name,
		Protocol:      string(r.Kind),
		Settings:      &settings,
		StreamSetting: buildStreamSettings(r),
	}, nil
}

// --- JSON Builders ---

func buildVMess(r *link.Record) json.RawMessage {
	return jsonRaw(map[string]interface{}{
		"vnext": []interface{}{
			map[string]interface{}{
				"address": r.Server,
				"port":    r.Port,
				"users": []interface{}{
					map[string]interface{}{
						"id":       r.Credential,
						"alterId":  r.AlterID,
						"security": r.Cipher,
					},
				},
			},
		},
	})
}

func buildVLESS(r *link.Record) json.RawMessage {
	return jsonRaw(map[string]interface{}{
		"vnext": []interface{}{
			map[string]interface{}{
				"address": r.Server,
				"port":    r.Port,
				"users": []interface{}{
					map[string]interface{}{
						"id":         r.Credential,
						"encryption": "none",
						"flow":       r.Flow,
					},
				},
			},
		},
	})
}

func buildTrojan(r *link.Record) json.RawMessage {
	return jsonRaw(map[string]interface{}{
		"servers": []interface{}{
			map[string]interface{}{
				"address":  r.Server,
				"port":     r.Port,
				"password": r.Credential,
			},
		},
	})
}

func buildStreamSettings(r *link.Record) *conf.StreamConfig {
	network := r.Network
	if network == "" {
		network = "tcp"
	}

	sc := &conf.StreamConfig{
		Network: (*conf.TransportProtocol)(&network),
	}

	if r.TLS {
		sc.Security = "tls"
		if r.Security == "reality" {
			sc.Security = "reality"
		}
		sc.TLSSettings = &conf.TLSConfig{
			ServerName:  r.ServerName,
			Fingerprint: r.Fingerprint,
			Insecure:    r.SkipCertVerify,
		}
		if r.Security == "reality" {
			sc.REALITYSettings = &conf.REALITYConfig{
				Fingerprint: r.Fingerprint,
				ServerName:  r.ServerName,
				PublicKey:   r.RealityPublicKey,
				ShortId:     r.RealityShortID,
			}
		}
	}

	if r.WSOpts != nil {
		sc.WSSettings = &conf.WebSocketConfig{
			Path: r.WSOpts.Path,
			Headers: map[string]string{
				"Host": r.WSOpts.Host,
			},
		}
	}

	return sc
}

func jsonRaw(v interface{}) json.RawMessage {
	b, _ := json.Marshal(v)
	return json.RawMessage(b)
}

func init() {
	render.Register("xray", func() render.Renderer { return &Renderer{} })
}
