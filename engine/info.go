package engine

import (
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// info builds the transfer information for the final response.
func (t *transfer) info(resp *http.Response, downloaded int64) Info {
	t.mu.Lock()
	defer t.mu.Unlock()

	total := time.Since(t.start)
	since := func(at time.Time) float64 {
		if at.IsZero() {
			return 0
		}
		return at.Sub(t.start).Seconds()
	}
	perSecond := func(n int64) float64 {
		if n <= 0 || total <= 0 {
			return 0
		}
		return float64(n) / total.Seconds()
	}

	effective := t.rawURL
	if t.redirects > 0 && resp.Request != nil {
		effective = resp.Request.URL.String()
	}

	pretransfer := t.tlsDone
	if pretransfer.IsZero() {
		pretransfer = t.connectDone
	}

	var redirectTime float64
	if t.redirects > 0 {
		redirectTime = t.hopStart.Sub(t.start).Seconds()
	}

	primaryIP, primaryPort := splitAddr(t.remote)
	localIP, localPort := splitAddr(t.local)

	info := Info{
		InfoURL:                   effective,
		InfoHTTPCode:              resp.StatusCode,
		"header_size":             t.headerSize,
		"request_size":            t.requestSize,
		"redirect_count":          t.redirects,
		"total_time":              total.Seconds(),
		"namelookup_time":         since(t.dnsDone),
		"connect_time":            since(t.connectDone),
		"pretransfer_time":        since(pretransfer),
		"starttransfer_time":      since(t.firstByte),
		"redirect_time":           redirectTime,
		"size_upload":             float64(max(t.uploadSize, 0)),
		"size_download":           float64(downloaded),
		"speed_download":          perSecond(downloaded),
		"speed_upload":            perSecond(t.uploadSize),
		"download_content_length": float64(resp.ContentLength),
		"upload_content_length":   float64(t.uploadSize),
		"redirect_url":            redirectURL(resp, t.s.followLocation),
		"primary_ip":              primaryIP,
		"primary_port":            primaryPort,
		"local_ip":                localIP,
		"local_port":              localPort,
		"http_version":            httpVersion(resp),
		"scheme":                  "",
		"effective_method":        t.method,
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		info[InfoContentType] = ct
	}

	if resp.Request != nil {
		info["scheme"] = strings.ToUpper(resp.Request.URL.Scheme)
		info["effective_method"] = resp.Request.Method
	}

	if t.s.headerOut {
		info["request_header"] = t.reqHeader.String()
	}

	if t.s.certInfo && resp.TLS != nil {
		info["certinfo"] = certInfo(resp.TLS.PeerCertificates)
	}

	return info
}

// redirectURL is the resolved Location of a redirect that was not followed.
func redirectURL(resp *http.Response, followed bool) string {
	if followed || resp.StatusCode < 300 || resp.StatusCode >= 400 {
		return ""
	}

	loc, err := resp.Location()
	if err != nil {
		return ""
	}

	return loc.String()
}

// httpVersion reports the protocol with libcurl's CURL_HTTP_VERSION numbering.
func httpVersion(resp *http.Response) int {
	switch {
	case resp.ProtoMajor == 1 && resp.ProtoMinor == 0:
		return 1
	case resp.ProtoMajor == 1:
		return 2
	case resp.ProtoMajor == 2:
		return 3
	case resp.ProtoMajor == 3:
		return 30
	default:
		return 0
	}
}

func certInfo(chain []*x509.Certificate) []map[string]string {
	out := make([]map[string]string, 0, len(chain))
	for _, c := range chain {
		out = append(out, map[string]string{
			"Subject":              c.Subject.String(),
			"Issuer":               c.Issuer.String(),
			"Version":              strconv.Itoa(c.Version),
			"Serial Number":        c.SerialNumber.Text(16),
			"Signature Algorithm":  c.SignatureAlgorithm.String(),
			"Public Key Algorithm": c.PublicKeyAlgorithm.String(),
			"Start date":           c.NotBefore.UTC().Format(time.RFC1123),
			"Expire date":          c.NotAfter.UTC().Format(time.RFC1123),
			"Cert":                 string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: c.Raw})),
		})
	}

	return out
}
