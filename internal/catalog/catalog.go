// Package catalog holds the static cipher/protocol/obfuscation sets used
// to decide SSR proxy compatibility with vanilla Clash vs ClashR. Built
// once at package init time as plain read-only maps - no sync.Once is
// needed since package-level var initialization already runs exactly
// once before any other code in the program observes these vars.
package catalog

// ClashSSRCiphers are the SS ciphers vanilla Clash accepts for SSR nodes.
var ClashSSRCiphers = stringSet(
	"aes-128-cfb", "aes-192-cfb", "aes-256-cfb",
	"aes-128-ctr", "aes-192-ctr", "aes-256-ctr",
	"aes-128-ofb", "aes-192-ofb", "aes-256-ofb",
	"des-cfb", "bf-cfb", "cast5-cfb", "rc4-md5",
	"chacha20", "chacha20-ietf", "salsa20",
	"camellia-128-cfb", "camellia-192-cfb", "camellia-256-cfb",
	"idea-cfb", "rc2-cfb", "seed-cfb",
)

// ClashRProtocols are the SSR protocols ClashR understands.
var ClashRProtocols = stringSet(
	"origin", "auth_sha1_v4", "auth_aes128_md5",
	"auth_aes128_sha1", "auth_chain_a", "auth_chain_b",
)

// ClashRObfs are the SSR obfuscation modes ClashR understands.
var ClashRObfs = stringSet(
	"plain", "http_simple", "http_post", "random_head",
	"tls1.2_ticket_auth", "tls1.2_ticket_fastauth",
)

func stringSet(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
