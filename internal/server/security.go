package server

import (
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/dtroode/identitystore/internal/model"
)

var (
	_ model.SecurityLayer = (*TLSListener)(nil)
	_ model.SecurityLayer = (*PlainListener)(nil)
)

// TLSListener serves TLS using a certificate pair read from disk.
// The pair is re-read on the next handshake after either file changes,
// so rotated certificates apply without a restart.
type TLSListener struct {
	certFileName       string
	privateKeyFileName string

	mu      sync.Mutex
	cert    *tls.Certificate
	modTime time.Time
}

// NewTLSListener creates a listener for the given certificate and key files.
func NewTLSListener(certFileName, privateKeyFileName string) *TLSListener {
	return &TLSListener{
		certFileName:       certFileName,
		privateKeyFileName: privateKeyFileName,
	}
}

// Listen loads the certificate pair and starts a TLS listener on addr.
func (l *TLSListener) Listen(protocol, addr string) (net.Listener, error) {
	if _, err := l.certificate(); err != nil {
		return nil, err
	}

	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
		GetCertificate: func(*tls.ClientHelloInfo) (*tls.Certificate, error) {
			return l.certificate()
		},
	}
	return tls.Listen(protocol, addr, tlsConfig)
}

func (l *TLSListener) certificate() (*tls.Certificate, error) {
	modTime, err := l.latestModTime()
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cert != nil && !modTime.After(l.modTime) {
		return l.cert, nil
	}

	cert, err := tls.LoadX509KeyPair(l.certFileName, l.privateKeyFileName)
	if err != nil {
		// keep serving the previous pair while a rotation is half written
		if l.cert != nil {
			return l.cert, nil
		}
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}
	l.cert = &cert
	l.modTime = modTime

	return l.cert, nil
}

func (l *TLSListener) latestModTime() (time.Time, error) {
	var latest time.Time
	for _, name := range []string{l.certFileName, l.privateKeyFileName} {
		info, err := os.Stat(name)
		if err != nil {
			return time.Time{}, err
		}
		if info.ModTime().After(latest) {
			latest = info.ModTime()
		}
	}
	return latest, nil
}

// PlainListener serves unencrypted connections.
type PlainListener struct{}

func NewPlainListener() *PlainListener {
	return &PlainListener{}
}

func (l *PlainListener) Listen(protocol, addr string) (net.Listener, error) {
	return net.Listen(protocol, addr)
}
