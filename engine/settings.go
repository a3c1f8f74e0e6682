package engine

import (
	"io"
	"time"

	"github.com/adamwoolhether/xfer/option"
)

// defaultMaxRedirs matches the libcurl default redirect limit.
const defaultMaxRedirs = 30

// settings is the decoded form of the options applied to a handle.
type settings struct {
	followLocation bool
	maxRedirs      int
	autoReferer    bool

	returnTransfer bool
	writeData      io.Writer
	includeHeader  bool

	acceptEncoding *string
	headerOut      bool
	verbose        bool
	stderr         io.Writer

	headers       []string
	userAgent     string
	referer       string
	cookie        string
	customRequest string
	rangeSpec     string
	bearer        string

	post       bool
	postFields any
	httpGet    bool
	noBody     bool

	timeout        time.Duration
	connectTimeout time.Duration

	verifyPeer   bool
	verifyHost   int
	verifyStatus bool
	caInfo       string
	certInfo     bool

	failOnError bool

	userPwd  string
	username *string
	password *string

	proxy *string
}

func defaultSettings() settings {
	return settings{
		maxRedirs:  defaultMaxRedirs,
		verifyPeer: true,
		verifyHost: 2,
	}
}

// applier decodes a single option value into settings, reporting false
// when the value has the wrong type.
type applier func(s *settings, v any) bool

var appliers = map[option.ID]applier{
	option.FollowLocation:   boolSetter(func(s *settings, b bool) { s.followLocation = b }),
	option.MaxRedirs:        intSetter(func(s *settings, n int) { s.maxRedirs = n }),
	option.AutoReferer:      boolSetter(func(s *settings, b bool) { s.autoReferer = b }),
	option.ReturnTransfer:   boolSetter(func(s *settings, b bool) { s.returnTransfer = b }),
	option.WriteData:        writerSetter(func(s *settings, w io.Writer) { s.writeData = w }),
	option.Header:           boolSetter(func(s *settings, b bool) { s.includeHeader = b }),
	option.AcceptEncoding:   stringSetter(func(s *settings, str string) { s.acceptEncoding = &str }),
	option.HeaderOut:        boolSetter(func(s *settings, b bool) { s.headerOut = b }),
	option.Verbose:          boolSetter(func(s *settings, b bool) { s.verbose = b }),
	option.Stderr:           writerSetter(func(s *settings, w io.Writer) { s.stderr = w }),
	option.HTTPHeader:       stringsSetter(func(s *settings, h []string) { s.headers = h }),
	option.UserAgent:        stringSetter(func(s *settings, str string) { s.userAgent = str }),
	option.Referer:          stringSetter(func(s *settings, str string) { s.referer = str }),
	option.Cookie:           stringSetter(func(s *settings, str string) { s.cookie = str }),
	option.CustomRequest:    stringSetter(func(s *settings, str string) { s.customRequest = str }),
	option.Range:            stringSetter(func(s *settings, str string) { s.rangeSpec = str }),
	option.XOAuth2Bearer:    stringSetter(func(s *settings, str string) { s.bearer = str }),
	option.Post:             boolSetter(func(s *settings, b bool) { s.post = b }),
	option.PostFields:       applyPostFields,
	option.HTTPGet:          boolSetter(func(s *settings, b bool) { s.httpGet = b }),
	option.NoBody:           boolSetter(func(s *settings, b bool) { s.noBody = b }),
	option.Timeout:          intSetter(func(s *settings, n int) { s.timeout = time.Duration(n) * time.Second }),
	option.TimeoutMS:        intSetter(func(s *settings, n int) { s.timeout = time.Duration(n) * time.Millisecond }),
	option.ConnectTimeout:   intSetter(func(s *settings, n int) { s.connectTimeout = time.Duration(n) * time.Second }),
	option.ConnectTimeoutMS: intSetter(func(s *settings, n int) { s.connectTimeout = time.Duration(n) * time.Millisecond }),
	option.SSLVerifyPeer:    boolSetter(func(s *settings, b bool) { s.verifyPeer = b }),
	option.SSLVerifyHost:    intSetter(func(s *settings, n int) { s.verifyHost = n }),
	option.SSLVerifyStatus:  boolSetter(func(s *settings, b bool) { s.verifyStatus = b }),
	option.CAInfo:           stringSetter(func(s *settings, str string) { s.caInfo = str }),
	option.CertInfo:         boolSetter(func(s *settings, b bool) { s.certInfo = b }),
	option.FailOnError:      boolSetter(func(s *settings, b bool) { s.failOnError = b }),
	option.UserPwd:          stringSetter(func(s *settings, str string) { s.userPwd = str }),
	option.Username:         stringSetter(func(s *settings, str string) { s.username = &str }),
	option.Password:         stringSetter(func(s *settings, str string) { s.password = &str }),
	option.Proxy:            stringSetter(func(s *settings, str string) { s.proxy = &str }),
}

// Supported reports whether the live engine implements id.
func Supported(id option.ID) bool {
	_, ok := appliers[id]
	return ok
}

func applyPostFields(s *settings, v any) bool {
	switch f := v.(type) {
	case string, map[string]string:
		s.postFields = f
		return true
	case []byte:
		s.postFields = string(f)
		return true
	default:
		return false
	}
}

func boolSetter(set func(*settings, bool)) applier {
	return func(s *settings, v any) bool {
		if b, ok := v.(bool); ok {
			set(s, b)
			return true
		}
		if n, ok := toInt(v); ok {
			set(s, n != 0)
			return true
		}
		return false
	}
}

func intSetter(set func(*settings, int)) applier {
	return func(s *settings, v any) bool {
		if n, ok := toInt(v); ok {
			set(s, n)
			return true
		}
		if b, ok := v.(bool); ok {
			n := 0
			if b {
				n = 1
			}
			set(s, n)
			return true
		}
		return false
	}
}

func stringSetter(set func(*settings, string)) applier {
	return func(s *settings, v any) bool {
		str, ok := v.(string)
		if ok {
			set(s, str)
		}
		return ok
	}
}

func stringsSetter(set func(*settings, []string)) applier {
	return func(s *settings, v any) bool {
		strs, ok := v.([]string)
		if ok {
			set(s, strs)
		}
		return ok
	}
}

func writerSetter(set func(*settings, io.Writer)) applier {
	return func(s *settings, v any) bool {
		w, ok := v.(io.Writer)
		if ok {
			set(s, w)
		}
		return ok
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	default:
		return 0, false
	}
}
