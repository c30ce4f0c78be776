package network

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/proxy"
)

// ClientFactory creates outbound HTTP clients that share one proxy setting.
// The model provider and the hosted store both dial through it.
type ClientFactory struct {
	proxyURL       string
	testHTTPClient *http.Client // For testing only
}

// NewClientFactory validates proxyURL (may be empty) and returns a factory.
func NewClientFactory(proxyURL string) (*ClientFactory, error) {
	proxyURL = strings.TrimSpace(proxyURL)
	if proxyURL != "" {
		if _, err := newTransportWithProxy(proxyURL); err != nil {
			return nil, err
		}
	}
	return &ClientFactory{proxyURL: proxyURL}, nil
}

// NewClientFactoryForTest creates a client factory that uses the given http.Client for testing.
func NewClientFactoryForTest(client *http.Client) *ClientFactory {
	return &ClientFactory{testHTTPClient: client}
}

// ProxyURL returns the configured proxy with any password masked, or "".
func (f *ClientFactory) ProxyURL() string {
	if f.proxyURL == "" {
		return ""
	}
	parsed, err := url.Parse(f.proxyURL)
	if err != nil {
		return ""
	}
	return parsed.Redacted()
}

// NewHTTPClient creates an http.Client with proxy configuration. A zero
// timeout leaves cancellation to the request context.
func (f *ClientFactory) NewHTTPClient(timeout time.Duration) *http.Client {
	if f.testHTTPClient != nil {
		return f.testHTTPClient
	}

	client := &http.Client{Timeout: timeout}
	if f.proxyURL != "" {
		// Validated in NewClientFactory.
		transport, _ := newTransportWithProxy(f.proxyURL)
		client.Transport = transport
	}
	return client
}

// newTransportWithProxy creates an http.Transport with proper proxy support.
// SOCKS proxies dial through golang.org/x/net/proxy; HTTP(S) proxies use http.ProxyURL.
func newTransportWithProxy(proxyURL string) (*http.Transport, error) {
	parsed, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("parse proxy url: %w", err)
	}

	switch {
	case strings.HasPrefix(parsed.Scheme, "socks"):
		var auth *proxy.Auth
		if parsed.User != nil {
			auth = &proxy.Auth{User: parsed.User.Username()}
			if password, ok := parsed.User.Password(); ok {
				auth.Password = password
			}
		}

		dialer, err := proxy.SOCKS5("tcp", parsed.Host, auth, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("socks5 dialer: %w", err)
		}
		transport := &http.Transport{}
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			transport.DialContext = cd.DialContext
		} else {
			transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}
		return transport, nil
	case parsed.Scheme == "http" || parsed.Scheme == "https":
		return &http.Transport{Proxy: http.ProxyURL(parsed)}, nil
	default:
		return nil, fmt.Errorf("unsupported proxy scheme %q", parsed.Scheme)
	}
}
