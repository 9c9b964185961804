package filter

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jojojoinme/subconverter/internal/catalog"
	"github.com/jojojoinme/subconverter/internal/model"
)

func strPtr(s string) *string { return &s }

func TestDecideClashWithFilterDeprecatedKeepsSupportedSSR(t *testing.T) {
	p := model.Proxy{
		Type:          model.ProxyTypeShadowsocksR,
		EncryptMethod: strPtr("aes-128-cfb"),
		Protocol:      strPtr("origin"),
		Obfs:          strPtr("plain"),
	}
	d := Decide(p, false, true)
	assert.True(t, d.Keep)
}

func TestDecideClashRWithFilterDeprecatedAllowsNonClashCipherSSR(t *testing.T) {
	p := model.Proxy{
		Type:          model.ProxyTypeShadowsocksR,
		EncryptMethod: strPtr("rc4"),
		Protocol:      strPtr("origin"),
		Obfs:          strPtr("plain"),
	}
	d := Decide(p, true, true)
	assert.True(t, d.Keep, "a ClashR target accepts SSR ciphers outside the vanilla Clash set")
}

func TestDecideFilterDeprecatedStillFiltersChacha20SS(t *testing.T) {
	p := model.Proxy{
		Type:          model.ProxyTypeShadowsocks,
		EncryptMethod: strPtr("chacha20"),
	}
	d := Decide(p, false, true)
	require.False(t, d.Keep)
	assert.Contains(t, d.Reason, "chacha20")
}

func TestDecideSnellV4IsAlwaysRejected(t *testing.T) {
	p := model.Proxy{Type: model.ProxyTypeSnell, SnellVersion: 4}
	d := Decide(p, false, false)
	assert.False(t, d.Keep)
}

func TestDecideUnknownAndHTTPSAreAlwaysRejected(t *testing.T) {
	for _, typ := range []model.ProxyType{model.ProxyTypeUnknown, model.ProxyTypeHTTPS} {
		d := Decide(model.Proxy{Type: typ}, false, false)
		assert.False(t, d.Keep)
	}
}

// TestDecideIsPure checks that Decide is deterministic across repeated
// calls with identical arguments. Decide takes the proxy by value, so it
// cannot mutate the caller's descriptor.
func TestDecideIsPure(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("Decide is deterministic for identical inputs", prop.ForAll(
		func(typVal int, clashR, filterDeprecated bool) bool {
			p := model.Proxy{Type: model.ProxyType(typVal)}
			first := Decide(p, clashR, filterDeprecated)
			second := Decide(p, clashR, filterDeprecated)
			return first == second
		},
		gen.IntRange(0, 10), gen.Bool(), gen.Bool(),
	))

	properties.TestingRun(t)
}

// TestDecideSSRRuleTableMatchesOracle exercises the full §4.2 SSR branch
// of the rule table: for generated cipher/protocol/obfs combinations
// drawn from a mix of catalog-known and unknown values, Decide's verdict
// must match an independently computed oracle (keep iff, when
// filterDeprecated is set, the protocol and obfs are ClashR-known and
// the cipher is either clashR-exempt or Clash-known).
func TestDecideSSRRuleTableMatchesOracle(t *testing.T) {
	ciphers := gen.OneConstOf("aes-128-cfb", "chacha20", "rc4", "unknown-cipher")
	protocols := gen.OneConstOf("origin", "auth_chain_a", "unknown-protocol")
	obfsModes := gen.OneConstOf("plain", "tls1.2_ticket_auth", "unknown-obfs")

	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("Decide matches the SSR keep/skip oracle across the rule table", prop.ForAll(
		func(cipher, protocol, obfs string, clashR, filterDeprecated bool) bool {
			p := model.Proxy{
				Type:          model.ProxyTypeShadowsocksR,
				EncryptMethod: strPtr(cipher),
				Protocol:      strPtr(protocol),
				Obfs:          strPtr(obfs),
			}
			d := Decide(p, clashR, filterDeprecated)

			if !filterDeprecated {
				return d.Keep
			}

			_, cipherOK := catalog.ClashSSRCiphers[cipher]
			_, protoOK := catalog.ClashRProtocols[protocol]
			_, obfsOK := catalog.ClashRObfs[obfs]
			wantKeep := (clashR || cipherOK) && protoOK && obfsOK

			return d.Keep == wantKeep
		},
		ciphers, protocols, obfsModes, gen.Bool(), gen.Bool(),
	))

	properties.TestingRun(t)
}
