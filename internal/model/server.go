package model

import (
	"context"
	"net"
)

// SecurityLayer opens the listener a Server accepts connections on.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a network front end of the identity store.
type Server interface {
	Start(securityLayer SecurityLayer) error
	// Stop drains in-flight calls until ctx is done, then closes the rest.
	Stop(ctx context.Context) error
	Address() string
}
