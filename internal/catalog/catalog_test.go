package catalog

import "testing"

func TestClashSSRCiphersContainsKnownEntries(t *testing.T) {
	for _, cipher := range []string{"aes-128-cfb", "chacha20", "rc4-md5"} {
		if _, ok := ClashSSRCiphers[cipher]; !ok {
			t.Errorf("expected cipher %q to be in ClashSSRCiphers", cipher)
		}
	}
	if _, ok := ClashSSRCiphers["chacha20-ietf-poly1305"]; ok {
		t.Error("chacha20-ietf-poly1305 is an AEAD cipher, should not be in the SSR set")
	}
}

func TestClashRProtocolsAndObfs(t *testing.T) {
	if _, ok := ClashRProtocols["auth_chain_a"]; !ok {
		t.Error("expected auth_chain_a in ClashRProtocols")
	}
	if _, ok := ClashRObfs["tls1.2_ticket_auth"]; !ok {
		t.Error("expected tls1.2_ticket_auth in ClashRObfs")
	}
	if _, ok := ClashRObfs["unknown_obfs"]; ok {
		t.Error("unknown_obfs should not be present")
	}
}
