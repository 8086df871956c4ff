package server

import (
	"net"

	"golang.org/x/sys/unix"
	"golang.org/x/xerrors"
)

// resolveSockaddr turns a "host:port" listen address into the raw sockaddr
// unix.Bind expects. Resolution itself uses net, since parsing and DNS
// lookup are not part of the leader-follower contract the unix socket
// calls exist to make explicit.
func resolveSockaddr(addr string) (unix.Sockaddr, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, xerrors.Errorf("split host:port: %w", err)
	}

	port, err := net.LookupPort("tcp", portStr)
	if err != nil {
		return nil, xerrors.Errorf("resolve port %q: %w", portStr, err)
	}

	if host == "" {
		host = "0.0.0.0"
	}
	ips, err := net.LookupIP(host)
	if err != nil {
		return nil, xerrors.Errorf("resolve host %q: %w", host, err)
	}

	var v4 net.IP
	for _, ip := range ips {
		if ip4 := ip.To4(); ip4 != nil {
			v4 = ip4
			break
		}
	}
	if v4 == nil {
		return nil, xerrors.Errorf("no IPv4 address for host %q", host)
	}

	var addr4 [4]byte
	copy(addr4[:], v4)
	return &unix.SockaddrInet4{Port: port, Addr: addr4}, nil
}
