package engine

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"
	"time"
)

// describe renders a transfer failure with libcurl's wording so callers and
// logs read the same whichever engine ran the transfer.
func describe(err error, t *transfer) string {
	elapsed := time.Since(t.start).Milliseconds()
	host, port := hostPort(t.rawURL)

	var (
		dnsErr      *net.DNSError
		opErr       *net.OpError
		unknownAuth x509.UnknownAuthorityError
		hostErr     x509.HostnameError
		invalid     x509.CertificateInvalidError
		verifyErr   *tls.CertificateVerificationError
	)

	switch {
	case errors.Is(err, errTooManyRedirects):
		return fmt.Sprintf("Maximum (%d) redirects followed", t.s.maxRedirs)

	case errors.As(err, &dnsErr):
		return fmt.Sprintf("Could not resolve host: %s", host)

	case errors.As(err, &opErr) && opErr.Op == "dial" && opErr.Timeout():
		return fmt.Sprintf("Connection timed out after %d milliseconds", elapsed)

	case errors.Is(err, context.DeadlineExceeded) || isTimeout(err):
		var received int64
		if t.body != nil {
			received = t.body.n
		}
		return fmt.Sprintf("Operation timed out after %d milliseconds with %d bytes received", elapsed, received)

	case errors.Is(err, syscall.ECONNREFUSED):
		return fmt.Sprintf("Failed to connect to %s port %s after %d ms: Connection refused", host, port, elapsed)

	case errors.As(err, &opErr) && opErr.Op == "dial":
		return fmt.Sprintf("Failed to connect to %s port %s after %d ms: %v", host, port, elapsed, opErr.Err)

	case errors.Is(err, errNoOCSP):
		return "No OCSP response received"

	case errors.As(err, &hostErr):
		return fmt.Sprintf("SSL: no alternative certificate subject name matches target host name '%s'", host)

	case errors.As(err, &unknownAuth):
		return "SSL certificate problem: unable to get local issuer certificate"

	case errors.As(err, &invalid):
		if invalid.Reason == x509.Expired {
			return "SSL certificate problem: certificate has expired"
		}
		return fmt.Sprintf("SSL certificate problem: %s", invalid.Error())

	case errors.As(err, &verifyErr):
		return fmt.Sprintf("SSL certificate problem: %v", verifyErr.Err)

	case strings.Contains(err.Error(), "unsupported protocol scheme"):
		scheme, _, _ := strings.Cut(t.rawURL, "://")
		return fmt.Sprintf("Protocol \"%s\" not supported", scheme)
	}

	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err.Error()
	}

	return err.Error()
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

func hostPort(rawURL string) (string, string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL, ""
	}

	port := u.Port()
	if port == "" {
		switch u.Scheme {
		case "https":
			port = "443"
		default:
			port = "80"
		}
	}

	return u.Hostname(), port
}
