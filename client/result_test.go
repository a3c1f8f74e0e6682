package client_test

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adamwoolhether/xfer/client"
	"github.com/adamwoolhether/xfer/engine"
	"github.com/adamwoolhether/xfer/engine/fake"
	"github.com/adamwoolhether/xfer/option"
)

func TestTry_Classification(t *testing.T) {
	testCases := []struct {
		name       string
		outcome    engine.Outcome
		expSuccess bool
		expBody    string
		expErr     string
	}{
		{
			name: "ok",
			outcome: engine.Outcome{
				Body: "fine", HasBody: true,
				Info: engine.Info{engine.InfoHTTPCode: 200},
			},
			expSuccess: true,
			expBody:    "fine",
		},
		{
			name: "server error",
			outcome: engine.Outcome{
				Body: "oops", HasBody: true,
				Info: engine.Info{engine.InfoHTTPCode: 500},
			},
			expBody: "oops",
		},
		{
			name: "created is not success",
			outcome: engine.Outcome{
				Info: engine.Info{engine.InfoHTTPCode: 201},
			},
		},
		{
			name: "transport failure",
			outcome: engine.Outcome{
				Info:   engine.Info{engine.InfoHTTPCode: 0},
				Err:    "Could not resolve host: nohost.test",
				Failed: true,
			},
			expErr: "Could not resolve host: nohost.test",
		},
		{
			name: "failed despite 200",
			outcome: engine.Outcome{
				Info:   engine.Info{engine.InfoHTTPCode: 200},
				Err:    "Operation timed out after 10 milliseconds with 3 bytes received",
				Failed: true,
			},
			expErr: "Operation timed out after 10 milliseconds with 3 bytes received",
		},
		{
			name:    "no body returned",
			outcome: engine.Outcome{Body: "ignored", Info: engine.Info{engine.InfoHTTPCode: 200}},
			// HasBody unset, as when the body went to a writer.
			expSuccess: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFactory(t, &fake.Engine{Outcome: tc.outcome})

			h, err := f.CreateHandle("http://example.test/x", nil)
			if err != nil {
				t.Fatal(err)
			}

			r, err := client.Try(t.Context(), h)
			if err != nil {
				t.Fatalf("try: %v", err)
			}

			if r.Success() != tc.expSuccess {
				t.Errorf("exp success %v, got %v", tc.expSuccess, r.Success())
			}
			if r.Response() != tc.expBody {
				t.Errorf("exp body %q, got %q", tc.expBody, r.Response())
			}
			if r.Error() != tc.expErr {
				t.Errorf("exp error %q, got %q", tc.expErr, r.Error())
			}

			_, execErr := client.Exec(t.Context(), h)
			if tc.expSuccess && execErr != nil {
				t.Errorf("exp exec to pass, got %v", execErr)
			}
			if !tc.expSuccess {
				var reqErr *client.RequestError
				if !errors.As(execErr, &reqErr) || !errors.Is(execErr, client.ErrFailedRequest) {
					t.Fatalf("exp RequestError, got %v", execErr)
				}
				if reqErr.URL != "http://example.test/x" || reqErr.Reason != tc.expErr {
					t.Errorf("unexpected request error %+v", reqErr)
				}
				if !strings.Contains(reqErr.Info, "Handle Options:") {
					t.Errorf("exp info dump in request error, got %q", reqErr.Info)
				}
			}
		})
	}
}

func TestTry_EmptyInfo(t *testing.T) {
	f := newFactory(t, &fake.Engine{Outcome: engine.Outcome{Failed: true, Err: "boom"}})

	h, err := f.CreateHandle("http://example.test", nil)
	if err != nil {
		t.Fatal(err)
	}

	r, err := client.Try(t.Context(), h)
	if err != nil {
		t.Fatal(err)
	}

	// The fake fills only the url.
	if info := r.Info(); len(info) != 1 || info.URL() != "http://example.test" {
		t.Errorf("exp only the url in info, got %v", info)
	}
	if r.Success() {
		t.Error("exp failure")
	}
}

func TestTry_LogSink(t *testing.T) {
	var sink bytes.Buffer
	f := newFactory(t, &fake.Engine{Outcome: engine.Outcome{
		Info:   engine.Info{engine.InfoHTTPCode: 0},
		Err:    "Could not resolve host: nohost.test",
		Failed: true,
	}}, client.WithLogWriter(&sink))

	h, err := f.CreateHandle("http://nohost.test", nil)
	if err != nil {
		t.Fatal(err)
	}

	r, err := client.Try(t.Context(), h)
	if err != nil {
		t.Fatal(err)
	}

	exp := "\nTransfer Info:\n" + r.InfoString() + "\n\n" +
		"\nTransfer Error:\nCould not resolve host: nohost.test\n\n"
	if sink.String() != exp {
		t.Errorf("exp sink:\n%q\ngot:\n%q", exp, sink.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestTry_LogSinkFailure(t *testing.T) {
	f := newFactory(t, fake.OK("kept"), client.WithLogWriter(failingWriter{}))

	h, err := f.CreateHandle("http://example.test", nil)
	if err != nil {
		t.Fatal(err)
	}

	r, err := client.Try(t.Context(), h)
	if !errors.Is(err, client.ErrFailedWritingLog) {
		t.Fatalf("exp ErrFailedWritingLog, got %v", err)
	}
	if r == nil || r.Response() != "kept" || !r.Success() {
		t.Errorf("exp the captured result alongside the error, got %+v", r)
	}
}

func TestTry_ResponseDir(t *testing.T) {
	testCases := []struct {
		name        string
		url         string
		contentType string
		expFile     string
	}{
		{name: "html fallback", url: "https://foo", contentType: "text/plain", expFile: "https_foo.html"},
		{name: "json", url: "https://api.test/v1/items?id=3", contentType: "application/json; charset=utf-8", expFile: "https_api_test_v1_items_id_3.json"},
		{name: "javascript", url: "http://cdn.test/app.js", contentType: "application/javascript", expFile: "http_cdn_test_app_js.js"},
		{name: "no content type", url: "http://a.test/", expFile: "http_a_test_.html"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			info := engine.Info{engine.InfoHTTPCode: 200}
			if tc.contentType != "" {
				info[engine.InfoContentType] = tc.contentType
			}
			f := newFactory(t, &fake.Engine{Outcome: engine.Outcome{Body: "saved body", HasBody: true, Info: info}})

			h, err := f.CreateHandle(tc.url, nil)
			if err != nil {
				t.Fatal(err)
			}

			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, tc.expFile), []byte("old"), 0o600); err != nil {
				t.Fatal(err)
			}

			if _, err := client.Try(t.Context(), h, client.WithResponseDir(dir)); err != nil {
				t.Fatal(err)
			}

			b, err := os.ReadFile(filepath.Join(dir, tc.expFile))
			if err != nil {
				t.Fatalf("exp saved file %s: %v", tc.expFile, err)
			}
			if string(b) != "saved body" {
				t.Errorf("exp overwritten body, got %q", b)
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 1 {
				t.Errorf("exp no leftover temp files, got %d entries", len(entries))
			}
		})
	}
}

func TestTry_ResponseDirMissing(t *testing.T) {
	f := newFactory(t, fake.OK("body"))

	h, err := f.CreateHandle("http://example.test", nil)
	if err != nil {
		t.Fatal(err)
	}

	missing := filepath.Join(t.TempDir(), "absent")
	r, err := client.Try(t.Context(), h, client.WithResponseDir(missing))
	if !errors.Is(err, client.ErrResponseLogDirNotExist) {
		t.Fatalf("exp ErrResponseLogDirNotExist, got %v", err)
	}
	if r == nil || !r.Success() {
		t.Errorf("exp the captured result to stay valid, got %+v", r)
	}
}

func TestResult_InfoString(t *testing.T) {
	f := newFactory(t, &fake.Engine{Outcome: engine.Outcome{
		Info: engine.Info{
			engine.InfoHTTPCode:    200,
			engine.InfoContentType: "text/html",
			"zz_extra":             1.5,
		},
	}})

	h, err := f.CreateHandle("http://example.test", option.Values{option.MaxRedirs: 2})
	if err != nil {
		t.Fatal(err)
	}

	r, err := client.Try(t.Context(), h)
	if err != nil {
		t.Fatal(err)
	}

	exp := strings.Join([]string{
		"Info:",
		`  url: "http://example.test"`,
		`  content_type: "text/html"`,
		"  http_code: 200",
		"  zz_extra: 1.5",
		"",
		"Handle Options:",
		"  CURLINFO_HEADER_OUT: true",
		"  CURLOPT_FOLLOWLOCATION: true",
		`  CURLOPT_ACCEPT_ENCODING: ""`,
		"  CURLOPT_RETURNTRANSFER: true",
		"  CURLOPT_MAXREDIRS: 2",
	}, "\n")

	if got := r.InfoString(); got != exp {
		t.Errorf("exp:\n%s\ngot:\n%s", exp, got)
	}
}

func TestLiveEngine_PostAndVerbose(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"method":%q,"name":%q}`, r.Method, r.FormValue("name"))
	}))
	defer srv.Close()

	var verbose bytes.Buffer
	f, err := client.NewFactory(client.WithLogWriter(&verbose))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	h, err := f.CreatePostHandle(srv.URL, map[string]string{"name": "gopher"}, nil)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	r, err := client.Exec(t.Context(), h, client.WithResponseDir(dir))
	if err != nil {
		t.Fatal(err)
	}

	if r.Response() != `{"method":"POST","name":"gopher"}` {
		t.Errorf("unexpected response %q", r.Response())
	}

	log := verbose.String()
	for _, exp := range []string{"> POST / HTTP/1.1", "< HTTP/1.1 200 OK", "Transfer Info:"} {
		if !strings.Contains(log, exp) {
			t.Errorf("exp log to contain %q, got:\n%s", exp, log)
		}
	}

	name := strings.NewReplacer(":", "_", "/", "_", ".", "_").Replace(srv.URL)
	for strings.Contains(name, "__") {
		name = strings.ReplaceAll(name, "__", "_")
	}
	if _, err := os.Stat(filepath.Join(dir, name+".json")); err != nil {
		t.Errorf("exp saved response: %v", err)
	}
}
