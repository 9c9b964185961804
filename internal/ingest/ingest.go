// Package ingest fetches and parses a subscription link into proxy
// descriptors. Proxy ingestion is an external collaborator per
// spec.md §1/§6 - referenced only by its contract - but this package
// ships a minimal vmess:// subscription reader so the HTTP surface is
// runnable end-to-end, adapted from the teacher's processConvert /
// convertVmessToClashProxy.
package ingest

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jojojoinme/subconverter/internal/model"
)

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// vmessLink mirrors the JSON payload carried inside a vmess:// link.
type vmessLink struct {
	Add  string `json:"add"`
	Aid  int    `json:"aid"`
	Host string `json:"host"`
	ID   string `json:"id"`
	Net  string `json:"net"`
	Path string `json:"path"`
	Port string `json:"port"`
	PS   string `json:"ps"`
	TLS  string `json:"tls"`
	Type string `json:"type"`
	SNI  string `json:"sni"`
}

// httpClient is overridable by tests.
var httpClient = &http.Client{Timeout: 15 * time.Second}

// FetchSubscription downloads a base64-encoded subscription document and
// parses every vmess:// line into a Proxy descriptor, skipping lines that
// fail to decode or parse rather than aborting the whole subscription.
func FetchSubscription(url string) ([]model.Proxy, error) {
	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subscription url: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read subscription response body: %w", err)
	}

	return ParseSubscription(string(body))
}

// ParseSubscription decodes a base64 subscription body and parses each
// vmess:// line it contains.
func ParseSubscription(body string) ([]model.Proxy, error) {
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(body))
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 subscription content: %w", err)
	}

	var proxies []model.Proxy
	for _, link := range strings.Split(string(decoded), "\n") {
		link = strings.TrimSpace(link)
		if !strings.HasPrefix(link, "vmess://") {
			continue
		}

		proxy, err := parseVmessLink(link)
		if err != nil {
			log.Printf("[ingest] skipping unparsable vmess link: %v", err)
			continue
		}
		proxies = append(proxies, proxy)
	}

	return proxies, nil
}

// FetchText downloads a plain-text document (a remote base template or
// similar), returning its body unmodified.
func FetchText(url string) (string, error) {
	resp, err := httpClient.Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %q: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body from %q: %w", url, err)
	}
	return string(body), nil
}

// FetchRuleset downloads a ruleset document, either from a remote URL or
// from the local filesystem when url is a bare path.
func FetchRuleset(location string) (string, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return FetchText(location)
	}

	data, err := readFile(location)
	if err != nil {
		return "", fmt.Errorf("failed to read ruleset %q: %w", location, err)
	}
	return data, nil
}

func parseVmessLink(link string) (model.Proxy, error) {
	encoded := strings.TrimPrefix(link, "vmess://")
	if pad := len(encoded) % 4; pad != 0 {
		encoded += strings.Repeat("=", 4-pad)
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return model.Proxy{}, fmt.Errorf("decode vmess link: %w", err)
	}

	var node vmessLink
	if err := json.Unmarshal(raw, &node); err != nil {
		return model.Proxy{}, fmt.Errorf("unmarshal vmess json: %w", err)
	}

	port, err := strconv.Atoi(node.Port)
	if err != nil {
		return model.Proxy{}, fmt.Errorf("invalid port %q: %w", node.Port, err)
	}

	proxy := model.Proxy{
		Type:    model.ProxyTypeVMess,
		Remark:  node.PS,
		Host:    node.Add,
		Port:    port,
		UUID:    node.ID,
		AlterID: node.Aid,
		Network: node.Net,
		TLS:     node.TLS == "tls",
		SNI:     node.SNI,
	}

	if node.Net == "ws" {
		proxy.WSPath = node.Path
		if node.Host != "" {
			proxy.WSHeaders = map[string]string{"Host": node.Host}
		}
	}

	return proxy, nil
}
