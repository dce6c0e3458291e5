package services

import (
	"fmt"
	"net"
	"strconv"
)

// DefaultPortSpan is how many ports past the requested one are probed.
const DefaultPortSpan = 100

// FindAvailableAddr keeps the host of addr and returns it with the first port,
// starting at the requested one, that can be bound. An empty host probes all
// interfaces, as the server would.
func FindAvailableAddr(addr string, span int) (string, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("parse address %q: %w", addr, err)
	}
	start, err := strconv.Atoi(portStr)
	if err != nil {
		return "", fmt.Errorf("parse port %q: %w", portStr, err)
	}

	for port := start; port <= start+span && port <= 65535; port++ {
		candidate := net.JoinHostPort(host, strconv.Itoa(port))
		l, err := net.Listen("tcp", candidate)
		if err != nil {
			continue
		}
		_ = l.Close()
		return candidate, nil
	}
	return "", fmt.Errorf("no free port on %q in %d-%d", host, start, start+span)
}
