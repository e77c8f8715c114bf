//go:build !unix

package network

import "net"

// ReuseAddrListenConfig returns a default net.ListenConfig. On Windows
// SO_REUSEADDR would let another process steal the port, so it is not set.
func ReuseAddrListenConfig() net.ListenConfig {
	return net.ListenConfig{}
}
