package option

// ID identifies a configurable transfer behaviour. Values follow the
// libcurl numbering so that option maps are portable between engines.
type ID int

// Settable option identifiers.
const (
	WriteData              ID = 10001
	URL                    ID = 10002
	Port                   ID = 3
	Proxy                  ID = 10004
	UserPwd                ID = 10005
	ProxyUserPwd           ID = 10006
	Range                  ID = 10007
	ReadData               ID = 10009
	Timeout                ID = 13
	InFileSize             ID = 14
	PostFields             ID = 10015
	Referer                ID = 10016
	UserAgent              ID = 10018
	LowSpeedLimit          ID = 19
	LowSpeedTime           ID = 20
	ResumeFrom             ID = 21
	Cookie                 ID = 10022
	HTTPHeader             ID = 10023
	SSLCert                ID = 10025
	KeyPasswd              ID = 10026
	CookieFile             ID = 10031
	SSLVersion             ID = 32
	CustomRequest          ID = 10036
	Stderr                 ID = 10037
	Verbose                ID = 41
	Header                 ID = 42
	NoProgress             ID = 43
	NoBody                 ID = 44
	FailOnError            ID = 45
	Upload                 ID = 46
	Post                   ID = 47
	FollowLocation         ID = 52
	AutoReferer            ID = 58
	ProxyPort              ID = 59
	PostFieldSize          ID = 60
	HTTPProxyTunnel        ID = 61
	Interface              ID = 10062
	SSLVerifyPeer          ID = 64
	CAInfo                 ID = 10065
	MaxRedirs              ID = 68
	FileTime               ID = 69
	FreshConnect           ID = 74
	ForbidReuse            ID = 75
	ConnectTimeout         ID = 78
	HTTPGet                ID = 80
	SSLVerifyHost          ID = 81
	CookieJar              ID = 10082
	SSLCipherList          ID = 10083
	HTTPVersion            ID = 84
	SSLKey                 ID = 10087
	DNSCacheTimeout        ID = 92
	CAPath                 ID = 10097
	BufferSize             ID = 98
	NoSignal               ID = 99
	ProxyType              ID = 101
	AcceptEncoding         ID = 10102
	UnrestrictedAuth       ID = 105
	HTTPAuth               ID = 107
	ProxyAuth              ID = 111
	IPResolve              ID = 113
	MaxFileSize            ID = 114
	TCPNoDelay             ID = 121
	TimeoutMS              ID = 155
	ConnectTimeoutMS       ID = 156
	PostRedir              ID = 161
	CertInfo               ID = 172
	Username               ID = 10173
	Password               ID = 10174
	NoProxy                ID = 10177
	Protocols              ID = 181
	RedirProtocols         ID = 182
	Resolve                ID = 10203
	TCPKeepAlive           ID = 213
	XOAuth2Bearer          ID = 10220
	ProxyHeader            ID = 10228
	SSLVerifyStatus        ID = 232
	PathAsIs               ID = 234
	DefaultProtocol        ID = 10238
	ProxySSLVerifyPeer     ID = 248
	ProxySSLVerifyHost     ID = 249
	ReturnTransfer         ID = 19913
	HeaderOut              ID = 2
	Expect100TimeoutMS     ID = 227
	SuppressConnectHeaders ID = 265
)

// Constant is a named integer exposed by a transfer engine. Only a subset
// of an engine's constants are settable options.
type Constant struct {
	Name  string
	Value ID
}

// CurlConstants returns the libcurl constant table in enumeration order.
// It contains option constants as well as info, error, version and auth
// constants, several of which share integer values with options.
func CurlConstants() []Constant {
	out := make([]Constant, len(curlConstants))
	copy(out, curlConstants)

	return out
}

var curlConstants = []Constant{
	{"CURLOPT_AUTOREFERER", AutoReferer},
	{"CURLOPT_BUFFERSIZE", BufferSize},
	{"CURLOPT_CAINFO", CAInfo},
	{"CURLOPT_CAPATH", CAPath},
	{"CURLOPT_CERTINFO", CertInfo},
	{"CURLOPT_CONNECTTIMEOUT", ConnectTimeout},
	{"CURLOPT_CONNECTTIMEOUT_MS", ConnectTimeoutMS},
	{"CURLOPT_COOKIE", Cookie},
	{"CURLOPT_COOKIEFILE", CookieFile},
	{"CURLOPT_COOKIEJAR", CookieJar},
	{"CURLOPT_CUSTOMREQUEST", CustomRequest},
	{"CURLOPT_DEFAULT_PROTOCOL", DefaultProtocol},
	{"CURLOPT_DNS_CACHE_TIMEOUT", DNSCacheTimeout},
	{"CURLOPT_ENCODING", AcceptEncoding},
	{"CURLOPT_EXPECT_100_TIMEOUT_MS", Expect100TimeoutMS},
	{"CURLOPT_FAILONERROR", FailOnError},
	{"CURLOPT_FILE", WriteData},
	{"CURLOPT_FILETIME", FileTime},
	{"CURLOPT_FOLLOWLOCATION", FollowLocation},
	{"CURLOPT_FORBID_REUSE", ForbidReuse},
	{"CURLOPT_FRESH_CONNECT", FreshConnect},
	{"CURLOPT_HEADER", Header},
	{"CURLOPT_HTTPAUTH", HTTPAuth},
	{"CURLOPT_HTTPGET", HTTPGet},
	{"CURLOPT_HTTPHEADER", HTTPHeader},
	{"CURLOPT_HTTPPROXYTUNNEL", HTTPProxyTunnel},
	{"CURLOPT_HTTP_VERSION", HTTPVersion},
	{"CURLOPT_INFILE", ReadData},
	{"CURLOPT_INFILESIZE", InFileSize},
	{"CURLOPT_INTERFACE", Interface},
	{"CURLOPT_IPRESOLVE", IPResolve},
	{"CURLOPT_KEYPASSWD", KeyPasswd},
	{"CURLOPT_LOW_SPEED_LIMIT", LowSpeedLimit},
	{"CURLOPT_LOW_SPEED_TIME", LowSpeedTime},
	{"CURLOPT_MAXFILESIZE", MaxFileSize},
	{"CURLOPT_MAXREDIRS", MaxRedirs},
	{"CURLOPT_NOBODY", NoBody},
	{"CURLOPT_NOPROGRESS", NoProgress},
	{"CURLOPT_NOPROXY", NoProxy},
	{"CURLOPT_NOSIGNAL", NoSignal},
	{"CURLOPT_PASSWORD", Password},
	{"CURLOPT_PATH_AS_IS", PathAsIs},
	{"CURLOPT_PORT", Port},
	{"CURLOPT_POST", Post},
	{"CURLOPT_POSTFIELDS", PostFields},
	{"CURLOPT_POSTFIELDSIZE", PostFieldSize},
	{"CURLOPT_POSTREDIR", PostRedir},
	{"CURLOPT_PROTOCOLS", Protocols},
	{"CURLOPT_PROXY", Proxy},
	{"CURLOPT_PROXYAUTH", ProxyAuth},
	{"CURLOPT_PROXYHEADER", ProxyHeader},
	{"CURLOPT_PROXYPORT", ProxyPort},
	{"CURLOPT_PROXYTYPE", ProxyType},
	{"CURLOPT_PROXYUSERPWD", ProxyUserPwd},
	{"CURLOPT_PROXY_SSL_VERIFYHOST", ProxySSLVerifyHost},
	{"CURLOPT_PROXY_SSL_VERIFYPEER", ProxySSLVerifyPeer},
	{"CURLOPT_RANGE", Range},
	{"CURLOPT_READDATA", ReadData},
	{"CURLOPT_REDIR_PROTOCOLS", RedirProtocols},
	{"CURLOPT_REFERER", Referer},
	{"CURLOPT_RESOLVE", Resolve},
	{"CURLOPT_RESUME_FROM", ResumeFrom},
	{"CURLOPT_RETURNTRANSFER", ReturnTransfer},
	{"CURLOPT_SSLCERT", SSLCert},
	{"CURLOPT_SSLKEY", SSLKey},
	{"CURLOPT_SSLVERSION", SSLVersion},
	{"CURLOPT_SSL_CIPHER_LIST", SSLCipherList},
	{"CURLOPT_SSL_VERIFYHOST", SSLVerifyHost},
	{"CURLOPT_SSL_VERIFYPEER", SSLVerifyPeer},
	{"CURLOPT_SSL_VERIFYSTATUS", SSLVerifyStatus},
	{"CURLOPT_STDERR", Stderr},
	{"CURLOPT_SUPPRESS_CONNECT_HEADERS", SuppressConnectHeaders},
	{"CURLOPT_TCP_KEEPALIVE", TCPKeepAlive},
	{"CURLOPT_TCP_NODELAY", TCPNoDelay},
	{"CURLOPT_TIMEOUT", Timeout},
	{"CURLOPT_TIMEOUT_MS", TimeoutMS},
	{"CURLOPT_UNRESTRICTED_AUTH", UnrestrictedAuth},
	{"CURLOPT_UPLOAD", Upload},
	{"CURLOPT_URL", URL},
	{"CURLOPT_USERAGENT", UserAgent},
	{"CURLOPT_USERNAME", Username},
	{"CURLOPT_USERPWD", UserPwd},
	{"CURLOPT_VERBOSE", Verbose},
	{"CURLOPT_WRITEDATA", WriteData},
	{"CURLOPT_XOAUTH2_BEARER", XOAuth2Bearer},
	{"CURLOPT_ACCEPT_ENCODING", AcceptEncoding},

	{"CURLINFO_HEADER_OUT", HeaderOut},
	{"CURLINFO_EFFECTIVE_URL", 1048577},
	{"CURLINFO_RESPONSE_CODE", 2097154},
	{"CURLINFO_HTTP_CODE", 2097154},
	{"CURLINFO_TOTAL_TIME", 3145731},
	{"CURLINFO_CONTENT_TYPE", 1048594},
	{"CURLINFO_REDIRECT_COUNT", 2097172},

	{"CURLE_OK", 0},
	{"CURLE_UNSUPPORTED_PROTOCOL", 1},
	{"CURLE_URL_MALFORMAT", 3},
	{"CURLE_COULDNT_RESOLVE_HOST", 6},
	{"CURLE_COULDNT_CONNECT", 7},
	{"CURLE_HTTP_RETURNED_ERROR", 22},
	{"CURLE_OPERATION_TIMEDOUT", 28},
	{"CURLE_SSL_CONNECT_ERROR", 35},
	{"CURLE_TOO_MANY_REDIRECTS", 47},
	{"CURLE_PEER_FAILED_VERIFICATION", 60},

	{"CURL_HTTP_VERSION_NONE", 0},
	{"CURL_HTTP_VERSION_1_0", 1},
	{"CURL_HTTP_VERSION_1_1", 2},
	{"CURL_HTTP_VERSION_2_0", 3},
	{"CURLAUTH_BASIC", 1},
	{"CURLAUTH_DIGEST", 2},
	{"CURLPROTO_HTTP", 1},
	{"CURLPROTO_HTTPS", 2},
	{"CURLPROXY_HTTP", 0},
	{"CURLPROXY_SOCKS5", 5},
	{"CURL_VERSION_IPV6", 1},
	{"CURL_VERSION_SSL", 4},
	{"CURL_VERSION_LIBZ", 8},
}
