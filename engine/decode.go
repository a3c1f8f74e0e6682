package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// decode wraps r with a decoder for the response's Content-Encoding.
// Decoding only happens when ACCEPT_ENCODING was set, mirroring libcurl
// which otherwise hands back the raw bytes. Responses without a body are
// passed through whatever encoding they claim.
func (t *transfer) decode(r io.Reader, resp *http.Response) (io.Reader, error) {
	if t.s.acceptEncoding == nil || !bodyAllowed(resp) {
		return r, nil
	}

	br := bufio.NewReader(r)
	if _, err := br.Peek(1); errors.Is(err, io.EOF) {
		return br, nil
	}

	encoding := resp.Header.Get("Content-Encoding")
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		return br, nil
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return zr, nil
	case "deflate":
		return inflate(br)
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", encoding)
	}
}

// bodyAllowed reports whether the response can carry a body at all.
func bodyAllowed(resp *http.Response) bool {
	if resp.Request != nil && resp.Request.Method == http.MethodHead {
		return false
	}

	switch {
	case resp.StatusCode >= 100 && resp.StatusCode < 200,
		resp.StatusCode == http.StatusNoContent,
		resp.StatusCode == http.StatusNotModified:
		return false
	}

	return true
}

// inflate accepts both zlib wrapped and raw deflate streams; servers send
// either under the "deflate" label.
func inflate(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("deflate: %w", err)
	}

	if len(head) == 2 && head[0]&0x0f == 8 && (uint16(head[0])<<8|uint16(head[1]))%31 == 0 {
		zr, err := zlib.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("zlib: %w", err)
		}
		return zr, nil
	}

	return flate.NewReader(br), nil
}
