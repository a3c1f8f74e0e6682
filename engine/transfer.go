package engine

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"maps"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	errTooManyRedirects = errors.New("too many redirects")
	errNoOCSP           = errors.New("no OCSP response received")
)

// transfer is the state of one Run. Trace hooks may fire from transport
// goroutines so every field below mu is guarded by it.
type transfer struct {
	engine *HTTP
	rawURL string
	s      *settings
	start  time.Time
	method string

	mu           sync.Mutex
	hopStart     time.Time
	dnsStart     time.Time
	dnsDone      time.Time
	connectDone  time.Time
	tlsDone      time.Time
	wroteRequest time.Time
	firstByte    time.Time
	remote       net.Addr
	local        net.Addr
	reqHeader    strings.Builder
	respHeader   string
	requestSize  int
	headerSize   int
	redirects    int
	uploadSize   int64
	body         *countingReader
}

func newTransfer(e *HTTP, rawURL string, s *settings) *transfer {
	return &transfer{
		engine: e,
		rawURL: rawURL,
		s:      s,
	}
}

func (t *transfer) run(ctx context.Context) Outcome {
	t.start = time.Now()

	if t.s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.s.timeout)
		defer cancel()
	}

	rt, cleanup, err := t.transport()
	if err != nil {
		return t.fail(err.Error(), nil)
	}
	defer cleanup()

	req, err := t.request(ctx)
	if err != nil {
		return t.fail(describe(err, t), nil)
	}

	hc := http.Client{
		Transport:     rt,
		CheckRedirect: t.checkRedirect,
	}

	resp, err := hc.Do(req)
	if err != nil {
		if resp != nil {
			return t.fail(describe(err, t), t.info(resp, 0))
		}
		return t.fail(describe(err, t), nil)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		if err := resp.Body.Close(); err != nil {
			t.engine.logger.Error("failed to close response body", "error", err)
		}
	}()

	if t.s.failOnError && resp.StatusCode >= http.StatusBadRequest {
		return t.fail(fmt.Sprintf("The requested URL returned error: %d", resp.StatusCode), t.info(resp, 0))
	}

	counter := &countingReader{r: resp.Body}
	t.body = counter
	body, err := t.decode(counter, resp)
	if err != nil {
		return t.fail(fmt.Sprintf("Error while processing content unencoding: %v", err), t.info(resp, counter.n))
	}

	var out Outcome
	if t.s.returnTransfer {
		var buf bytes.Buffer
		if t.s.includeHeader {
			buf.WriteString(t.lastResponseHeader())
		}
		if _, err := io.Copy(&buf, body); err != nil {
			return t.fail(describe(err, t), t.info(resp, counter.n))
		}
		out.Body = buf.String()
		out.HasBody = true
	} else {
		w := t.s.writeData
		if w == nil {
			w = os.Stdout
		}
		if t.s.includeHeader {
			_, _ = io.WriteString(w, t.lastResponseHeader())
		}
		if _, err := io.Copy(w, body); err != nil {
			return t.fail(fmt.Sprintf("Failure writing output to destination: %v", err), t.info(resp, counter.n))
		}
	}

	t.verbosef("* Connection to host %s left intact", req.URL.Host)
	out.Info = t.info(resp, counter.n)

	return out
}

func (t *transfer) fail(msg string, info Info) Outcome {
	if info == nil {
		info = Info{
			InfoURL:            t.rawURL,
			InfoHTTPCode:       0,
			"effective_method": t.method,
			"total_time":       time.Since(t.start).Seconds(),
		}
	}
	t.verbosef("* %s", msg)

	return Outcome{Info: info, Err: msg, Failed: true}
}

// transport clones the engine's base transport so that TLS, proxy and
// dial settings stay private to this transfer.
func (t *transfer) transport() (http.RoundTripper, func(), error) {
	rt := t.engine.base
	cleanup := func() {}

	if base, ok := rt.(*http.Transport); ok {
		tr := base.Clone()
		tr.DisableCompression = true

		conf, err := t.tlsConfig(tr.TLSClientConfig)
		if err != nil {
			return nil, nil, err
		}
		tr.TLSClientConfig = conf

		if t.s.connectTimeout > 0 {
			tr.DialContext = (&net.Dialer{
				Timeout:   t.s.connectTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext
			tr.TLSHandshakeTimeout = t.s.connectTimeout
		}

		if t.s.proxy != nil {
			if *t.s.proxy == "" {
				tr.Proxy = nil
			} else {
				raw := *t.s.proxy
				if !strings.Contains(raw, "://") {
					raw = "http://" + raw
				}
				pu, err := url.Parse(raw)
				if err != nil {
					return nil, nil, fmt.Errorf("Unsupported proxy syntax in '%s'", *t.s.proxy)
				}
				tr.Proxy = http.ProxyURL(pu)
			}
		}

		rt = tr
		cleanup = tr.CloseIdleConnections
	}

	if t.engine.throttle != nil {
		rt = t.engine.throttle.Wrap(rt)
	}

	return &hopRecorder{t: t, next: rt}, cleanup, nil
}

func (t *transfer) tlsConfig(base *tls.Config) (*tls.Config, error) {
	conf := &tls.Config{}
	if base != nil {
		conf = base.Clone()
	}

	if t.s.caInfo != "" {
		pem, err := os.ReadFile(t.s.caInfo)
		if err != nil {
			return nil, fmt.Errorf("error setting certificate file: %s", t.s.caInfo)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("error setting certificate file: %s", t.s.caInfo)
		}
		conf.RootCAs = pool
	}

	// Peer verification without host verification checks the chain only.
	chainOnly := t.s.verifyPeer && t.s.verifyHost == 0
	if !t.s.verifyPeer || chainOnly {
		conf.InsecureSkipVerify = true
	}

	if chainOnly || t.s.verifyStatus {
		roots := conf.RootCAs
		verifyStatus := t.s.verifyStatus
		conf.VerifyConnection = func(cs tls.ConnectionState) error {
			if chainOnly {
				if err := verifyChain(cs, roots); err != nil {
					return err
				}
			}
			if verifyStatus && len(cs.OCSPResponse) == 0 {
				return errNoOCSP
			}
			return nil
		}
	}

	return conf, nil
}

func verifyChain(cs tls.ConnectionState, roots *x509.CertPool) error {
	if len(cs.PeerCertificates) == 0 {
		return errors.New("no peer certificate")
	}

	intermediates := x509.NewCertPool()
	for _, c := range cs.PeerCertificates[1:] {
		intermediates.AddCert(c)
	}

	_, err := cs.PeerCertificates[0].Verify(x509.VerifyOptions{
		Roots:         roots,
		Intermediates: intermediates,
	})

	return err
}

func (t *transfer) request(ctx context.Context) (*http.Request, error) {
	method := http.MethodGet
	var body io.Reader
	var contentType string
	t.uploadSize = -1

	switch {
	case t.s.noBody:
		method = http.MethodHead
	case t.s.post || t.s.postFields != nil:
		method = http.MethodPost
		b, ct, err := encodePostFields(t.s.postFields)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
		contentType = ct
		t.uploadSize = int64(len(b))
	case t.s.httpGet:
		method = http.MethodGet
	}

	if t.s.customRequest != "" {
		method = t.s.customRequest
	}
	t.method = method

	ctx = httptrace.WithClientTrace(ctx, t.clientTrace())
	req, err := http.NewRequestWithContext(ctx, method, t.rawURL, body)
	if err != nil {
		return nil, err
	}

	// An empty User-Agent suppresses the net/http default.
	req.Header.Set("User-Agent", t.s.userAgent)
	req.Header.Set("Accept", "*/*")

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if t.s.acceptEncoding != nil {
		enc := *t.s.acceptEncoding
		if enc == "" {
			enc = "deflate, gzip"
		}
		req.Header.Set("Accept-Encoding", enc)
	}
	if t.s.referer != "" {
		req.Header.Set("Referer", t.s.referer)
	}
	if t.s.cookie != "" {
		req.Header.Set("Cookie", t.s.cookie)
	}
	if t.s.rangeSpec != "" {
		req.Header.Set("Range", "bytes="+t.s.rangeSpec)
	}

	switch {
	case t.s.userPwd != "":
		user, pass, _ := strings.Cut(t.s.userPwd, ":")
		req.SetBasicAuth(user, pass)
	case t.s.username != nil:
		var pass string
		if t.s.password != nil {
			pass = *t.s.password
		}
		req.SetBasicAuth(*t.s.username, pass)
	}
	if t.s.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+t.s.bearer)
	}

	seen := make(map[string]bool)
	for _, line := range t.s.headers {
		name, value, found := strings.Cut(line, ":")
		if !found {
			// "Name;" sends the header without a value.
			if n, ok := strings.CutSuffix(strings.TrimSpace(line), ";"); ok && n != "" {
				req.Header.Set(n, "")
			}
			continue
		}

		name, value = strings.TrimSpace(name), strings.TrimSpace(value)
		if name == "" {
			continue
		}

		switch {
		case value == "" && http.CanonicalHeaderKey(name) == "User-Agent":
			req.Header.Set(name, "")
		case value == "":
			// "Name:" removes a header the engine would otherwise send.
			req.Header.Del(name)
		case strings.EqualFold(name, "Host"):
			req.Host = value
		case seen[http.CanonicalHeaderKey(name)]:
			req.Header.Add(name, value)
		default:
			req.Header.Set(name, value)
		}
		seen[http.CanonicalHeaderKey(name)] = true
	}

	return req, nil
}

// encodePostFields encodes a string as an urlencoded body and a field map
// as multipart form data.
func encodePostFields(fields any) ([]byte, string, error) {
	switch f := fields.(type) {
	case nil:
		return nil, "application/x-www-form-urlencoded", nil
	case string:
		return []byte(f), "application/x-www-form-urlencoded", nil
	case map[string]string:
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		for _, k := range slices.Sorted(maps.Keys(f)) {
			if err := mw.WriteField(k, f[k]); err != nil {
				return nil, "", fmt.Errorf("writing form field %s: %w", k, err)
			}
		}
		if err := mw.Close(); err != nil {
			return nil, "", fmt.Errorf("closing form: %w", err)
		}
		return buf.Bytes(), mw.FormDataContentType(), nil
	default:
		return nil, "", fmt.Errorf("unsupported post fields type %T", fields)
	}
}

func (t *transfer) checkRedirect(req *http.Request, via []*http.Request) error {
	if !t.s.followLocation {
		return http.ErrUseLastResponse
	}
	if t.s.maxRedirs >= 0 && len(via) > t.s.maxRedirs {
		return errTooManyRedirects
	}

	t.mu.Lock()
	t.redirects = len(via)
	t.mu.Unlock()

	switch {
	case t.s.autoReferer:
		req.Header.Set("Referer", via[len(via)-1].URL.String())
	case t.s.referer != "":
		req.Header.Set("Referer", t.s.referer)
	default:
		req.Header.Del("Referer")
	}

	t.verbosef("* Issue another request to this URL: '%s'", req.URL)

	return nil
}

// countingReader counts the raw bytes received.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// hopRecorder records each request and response of a transfer, redirects
// included.
type hopRecorder struct {
	t    *transfer
	next http.RoundTripper
}

func (h *hopRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	h.t.beginHop(req)

	resp, err := h.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	h.t.endHop(resp)

	return resp, nil
}

func (t *transfer) beginHop(req *http.Request) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.hopStart = time.Now()
	t.dnsStart, t.dnsDone, t.connectDone, t.tlsDone = time.Time{}, time.Time{}, time.Time{}, time.Time{}
	t.wroteRequest, t.firstByte = time.Time{}, time.Time{}

	t.reqHeader.Reset()
	fmt.Fprintf(&t.reqHeader, "%s %s HTTP/1.1\r\n", req.Method, req.URL.RequestURI())
}

func (t *transfer) endHop(resp *http.Response) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\r\n", resp.Proto, resp.Status)
	for _, k := range slices.Sorted(maps.Keys(resp.Header)) {
		for _, v := range resp.Header[k] {
			fmt.Fprintf(&b, "%s: %s\r\n", k, v)
		}
	}
	b.WriteString("\r\n")

	block := b.String()

	t.mu.Lock()
	t.respHeader = block
	t.headerSize += len(block)
	t.mu.Unlock()

	for _, line := range strings.Split(strings.TrimSuffix(block, "\r\n"), "\r\n") {
		t.verbosef("< %s", line)
	}
}

func (t *transfer) lastResponseHeader() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.respHeader
}

func (t *transfer) clientTrace() *httptrace.ClientTrace {
	return &httptrace.ClientTrace{
		DNSStart: func(httptrace.DNSStartInfo) {
			t.mu.Lock()
			t.dnsStart = time.Now()
			t.mu.Unlock()
		},
		DNSDone: func(httptrace.DNSDoneInfo) {
			t.mu.Lock()
			t.dnsDone = time.Now()
			t.mu.Unlock()
		},
		ConnectStart: func(_, addr string) {
			t.verbosef("*   Trying %s...", addr)
		},
		ConnectDone: func(_, addr string, err error) {
			if err != nil {
				return
			}
			t.mu.Lock()
			t.connectDone = time.Now()
			t.mu.Unlock()

			host, port, _ := net.SplitHostPort(addr)
			t.verbosef("* Connected to %s (%s) port %s", hostOf(t.rawURL), host, port)
		},
		TLSHandshakeDone: func(cs tls.ConnectionState, err error) {
			if err != nil {
				return
			}
			t.mu.Lock()
			t.tlsDone = time.Now()
			t.mu.Unlock()

			t.verbosef("* SSL connection using %s / %s", tls.VersionName(cs.Version), tls.CipherSuiteName(cs.CipherSuite))
		},
		GotConn: func(info httptrace.GotConnInfo) {
			t.mu.Lock()
			t.remote, t.local = info.Conn.RemoteAddr(), info.Conn.LocalAddr()
			t.mu.Unlock()

			if info.Reused {
				t.verbosef("* Re-using existing connection with host %s", hostOf(t.rawURL))
			}
		},
		WroteHeaderField: func(key string, values []string) {
			t.mu.Lock()
			defer t.mu.Unlock()

			for _, v := range values {
				fmt.Fprintf(&t.reqHeader, "%s: %s\r\n", key, v)
			}
		},
		WroteHeaders: func() {
			t.mu.Lock()
			t.reqHeader.WriteString("\r\n")
			block := t.reqHeader.String()
			t.requestSize += len(block)
			t.mu.Unlock()

			for _, line := range strings.Split(strings.TrimSuffix(block, "\r\n"), "\r\n") {
				t.verbosef("> %s", line)
			}
		},
		WroteRequest: func(httptrace.WroteRequestInfo) {
			t.mu.Lock()
			t.wroteRequest = time.Now()
			t.mu.Unlock()
		},
		GotFirstResponseByte: func() {
			t.mu.Lock()
			t.firstByte = time.Now()
			t.mu.Unlock()
		},
	}
}

// verbosef writes a diagnostic line when verbose logging is on. Write
// failures are ignored; the stream is best effort.
func (t *transfer) verbosef(format string, args ...any) {
	if !t.s.verbose || t.s.stderr == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	_, _ = fmt.Fprintf(t.s.stderr, format+"\n", args...)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	return u.Hostname()
}

func splitAddr(addr net.Addr) (string, int) {
	if addr == nil {
		return "", 0
	}

	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String(), 0
	}
	p, _ := strconv.Atoi(port)

	return host, p
}
