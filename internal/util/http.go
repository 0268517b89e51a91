package util

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"
)

const (
	FetchTimeout  = 10 * time.Second
	MaxFetchBytes = 32 << 20
)

var (
	ErrResponseTooLarge = errors.New("response too large")
	ErrForbiddenAddress = errors.New("address not allowed")
)

var defaultClient = &http.Client{Timeout: FetchTimeout}

// publicClient refuses to connect to loopback, private, link-local and
// other non-public addresses. The check runs after DNS resolution.
var publicClient = &http.Client{
	Timeout: FetchTimeout,
	Transport: &http.Transport{
		Proxy: nil,
		DialContext: (&net.Dialer{
			Timeout: FetchTimeout,
			Control: denyInternal,
		}).DialContext,
		TLSHandshakeTimeout: FetchTimeout,
	},
}

func GetBytes(url string) ([]byte, error) {
	return getBytes(defaultClient, url, MaxFetchBytes)
}

// GetPublicBytes is GetBytes for URLs supplied by untrusted callers.
func GetPublicBytes(url string) ([]byte, error) {
	return getBytes(publicClient, url, MaxFetchBytes)
}

func getBytes(client *http.Client, url string, limit int64) ([]byte, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: unexpected status %s", url, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("get %s: %w (limit %d bytes)", url, ErrResponseTooLarge, limit)
	}
	return body, nil
}

func denyInternal(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip := net.ParseIP(host)
	if ip == nil || !IsPublicIP(ip) {
		return fmt.Errorf("%w: %s", ErrForbiddenAddress, address)
	}
	return nil
}

func IsPublicIP(ip net.IP) bool {
	return !(ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() || ip.IsMulticast())
}
