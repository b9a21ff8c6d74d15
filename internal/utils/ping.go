package utils

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"
)

// AuthorizerPingTimeout bounds the Authorizer reachability probe
const AuthorizerPingTimeout = 1500 * time.Millisecond

// PingService checks if a service is reachable at the given URL
func PingService(ctx context.Context, serviceURL string, timeout time.Duration) error {
	parsedURL, err := url.Parse(serviceURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsedURL.Hostname() == "" {
		return fmt.Errorf("invalid URL: no host in %q", serviceURL)
	}

	host := parsedURL.Hostname()
	port := parsedURL.Port()

	// Default ports if not specified
	if port == "" {
		switch parsedURL.Scheme {
		case "https":
			port = "443"
		default:
			port = "80"
		}
	}

	address := net.JoinHostPort(host, port)

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()

	return nil
}

// PingAuthorizer checks if the Authorizer service is reachable
func PingAuthorizer(ctx context.Context, authzURL string) error {
	return PingService(ctx, authzURL, AuthorizerPingTimeout)
}
