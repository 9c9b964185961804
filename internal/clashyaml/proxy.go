// Proxy Serializer (§4.4): maps a normalized proxy descriptor onto its
// Clash YAML proxy object, applying the resolved udp/tfo/skip-cert-verify
// tribool fields. Fields are written as name, server, port, then type and
// the type-specific payload, then udp/tfo/skip-cert-verify. The WireGuard
// Reserved bytes and a TLS flag on HTTP proxies are not written.
package clashyaml

import (
	"gopkg.in/yaml.v3"

	"github.com/jojojoinme/subconverter/internal/model"
)

// BuildProxyNode serializes one proxy descriptor to its Clash mapping
// node. The caller is expected to have already applied defaults via
// Proxy.ApplyDefaults and normalized the remark.
func BuildProxyNode(p model.Proxy) *yaml.Node {
	node := newMapping()
	setField(node, "name", p.Remark)
	setField(node, "server", p.Host)
	setField(node, "port", p.Port)

	switch p.Type {
	case model.ProxyTypeShadowsocks:
		setField(node, "type", "ss")
		setField(node, "cipher", model.StringOr(p.EncryptMethod, ""))
		setField(node, "password", model.StringOr(p.Password, ""))

	case model.ProxyTypeShadowsocksR:
		setField(node, "type", "ssr")
		setField(node, "cipher", model.StringOr(p.EncryptMethod, ""))
		setField(node, "password", model.StringOr(p.Password, ""))
		setField(node, "protocol", model.StringOr(p.Protocol, ""))
		setField(node, "obfs", model.StringOr(p.Obfs, ""))

	case model.ProxyTypeVMess:
		setField(node, "type", "vmess")
		setField(node, "uuid", p.UUID)
		setField(node, "alterId", p.AlterID)
		cipher := model.StringOr(p.EncryptMethod, "auto")
		setField(node, "cipher", cipher)
		setField(node, "tls", p.TLS)
		if p.Network != "" {
			setField(node, "network", p.Network)
		}
		if p.SNI != "" {
			setField(node, "servername", p.SNI)
		}
		if p.Network == "ws" {
			wsOpts := newMapping()
			setField(wsOpts, "path", p.WSPath)
			if len(p.WSHeaders) > 0 {
				setField(wsOpts, "headers", p.WSHeaders)
			}
			setField(node, "ws-opts", wsOpts)
		}
		if p.Network == "grpc" && p.GRPCServiceName != "" {
			grpcOpts := newMapping()
			setField(grpcOpts, "grpc-service-name", p.GRPCServiceName)
			setField(node, "grpc-opts", grpcOpts)
		}

	case model.ProxyTypeTrojan:
		setField(node, "type", "trojan")
		setField(node, "password", model.StringOr(p.Password, ""))
		if p.SNI != "" {
			setField(node, "sni", p.SNI)
		}
		if len(p.ALPN) > 0 {
			setField(node, "alpn", p.ALPN)
		}

	case model.ProxyTypeSnell:
		setField(node, "type", "snell")
		setField(node, "psk", model.StringOr(p.Password, ""))
		if p.SnellVersion > 0 {
			setField(node, "version", p.SnellVersion)
		}
		if obfs := model.StringOr(p.Obfs, ""); obfs != "" {
			obfsOpts := newMapping()
			setField(obfsOpts, "mode", obfs)
			setField(node, "obfs-opts", obfsOpts)
		}

	case model.ProxyTypeHTTP:
		setField(node, "type", "http")
		if p.Username != "" {
			setField(node, "username", p.Username)
		}
		if p.Password != nil {
			setField(node, "password", *p.Password)
		}

	case model.ProxyTypeSOCKS:
		setField(node, "type", "socks5")
		if p.Username != "" {
			setField(node, "username", p.Username)
		}
		if p.Password != nil {
			setField(node, "password", *p.Password)
		}

	case model.ProxyTypeWireGuard:
		setField(node, "type", "wireguard")
		setField(node, "private-key", p.PrivateKey)
		setField(node, "public-key", p.PublicKey)
		if p.PresharedKey != "" {
			setField(node, "preshared-key", p.PresharedKey)
		}
		if p.IP != "" {
			setField(node, "ip", p.IP)
		}
		if p.IPv6 != "" {
			setField(node, "ipv6", p.IPv6)
		}
		if p.MTU > 0 {
			setField(node, "mtu", p.MTU)
		}

	case model.ProxyTypeHysteria:
		setField(node, "type", "hysteria")
		if p.AuthStr != "" {
			setField(node, "auth-str", p.AuthStr)
		}
		if p.UpMbps > 0 {
			setField(node, "up", p.UpMbps)
		}
		if p.DownMbps > 0 {
			setField(node, "down", p.DownMbps)
		}
		if p.SNI != "" {
			setField(node, "sni", p.SNI)
		}
		if len(p.ALPN) > 0 {
			setField(node, "alpn", p.ALPN)
		}
	}

	if p.UDP != model.TriboolUnset {
		setField(node, "udp", p.UDP == model.TriboolTrue)
	}
	if p.TFO != model.TriboolUnset {
		setField(node, "tfo", p.TFO == model.TriboolTrue)
	}
	if p.SkipCertVerify != model.TriboolUnset {
		setField(node, "skip-cert-verify", p.SkipCertVerify == model.TriboolTrue)
	}

	return node
}

// BuildProxiesNode serializes an ordered list of proxies into a sequence
// node. Output ordering equals input ordering, per §4.4.
func BuildProxiesNode(proxies []model.Proxy) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, p := range proxies {
		seq.Content = append(seq.Content, BuildProxyNode(p))
	}
	return seq
}
