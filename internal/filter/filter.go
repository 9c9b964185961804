// Package filter implements the per-proxy keep/skip decision of §4.2.
package filter

import (
	"log"

	"github.com/jojojoinme/subconverter/internal/catalog"
	"github.com/jojojoinme/subconverter/internal/model"
)

// Decision is the filter's keep/skip verdict plus, when skipped, the
// reason a caller may want to log.
type Decision struct {
	Keep   bool
	Reason string
}

// Decide applies the §4.2 rule table, in order. It depends only on the
// proxy's type, version, cipher, protocol, and obfs, and on the
// filterDeprecated/clashR flags - it never mutates p.
func Decide(p model.Proxy, clashR, filterDeprecated bool) Decision {
	switch p.Type {
	case model.ProxyTypeSnell:
		if p.SnellVersion >= 4 {
			return Decision{Keep: false, Reason: "snell v4+ is rejected by Clash"}
		}

	case model.ProxyTypeShadowsocks:
		if filterDeprecated && model.StringOr(p.EncryptMethod, "") == "chacha20" {
			return Decision{Keep: false, Reason: "SS chacha20 is deprecated (filter_deprecated=true)"}
		}

	case model.ProxyTypeShadowsocksR:
		if filterDeprecated {
			cipher := model.StringOr(p.EncryptMethod, "")
			protocol := model.StringOr(p.Protocol, "")
			obfs := model.StringOr(p.Obfs, "")

			_, cipherOK := catalog.ClashSSRCiphers[cipher]
			_, protoOK := catalog.ClashRProtocols[protocol]
			_, obfsOK := catalog.ClashRObfs[obfs]

			if (!clashR && !cipherOK) || !protoOK || !obfsOK {
				return Decision{Keep: false, Reason: "SSR deprecated cipher/protocol/obfs"}
			}
		}

	case model.ProxyTypeUnknown, model.ProxyTypeHTTPS:
		return Decision{Keep: false, Reason: "unsupported proxy type"}
	}

	return Decision{Keep: true}
}

// LogSkip emits the error-level log line the spec requires for a skipped
// proxy, naming the proxy and the reason.
func LogSkip(remark string, reason string) {
	log.Printf("[filter] skipping proxy %q: %s", remark, reason)
}
