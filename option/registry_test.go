package option_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/adamwoolhether/xfer/option"
)

func TestNewRegistry_FiltersSettable(t *testing.T) {
	reg := option.NewRegistry("test/1.0", option.CurlConstants())

	testCases := []struct {
		name    string
		id      option.ID
		expName string
		expOK   bool
	}{
		{name: "prefixed option", id: option.FollowLocation, expName: "CURLOPT_FOLLOWLOCATION", expOK: true},
		{name: "allow-listed info constant", id: option.HeaderOut, expName: "CURLINFO_HEADER_OUT", expOK: true},
		{name: "alias keeps last name", id: option.AcceptEncoding, expName: "CURLOPT_ACCEPT_ENCODING", expOK: true},
		{name: "alias keeps last name for writedata", id: option.WriteData, expName: "CURLOPT_WRITEDATA", expOK: true},
		{name: "info constant is filtered", id: 1048577, expOK: false},
		{name: "unknown id", id: 9999, expOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			name, ok := reg.Name(tc.id)
			if ok != tc.expOK {
				t.Fatalf("Name(%d) ok = %v, want %v", tc.id, ok, tc.expOK)
			}
			if name != tc.expName {
				t.Errorf("Name(%d) = %q, want %q", tc.id, name, tc.expName)
			}
		})
	}
}

func TestNewRegistry_SharedValueNotOverwritten(t *testing.T) {
	// CURL_HTTP_VERSION_1_1 shares the value 2 with CURLINFO_HEADER_OUT and
	// is enumerated later, but is not settable.
	reg := option.NewRegistry("test/1.0", option.CurlConstants())

	name, ok := reg.Name(2)
	if !ok || name != "CURLINFO_HEADER_OUT" {
		t.Fatalf("Name(2) = %q, %v; want CURLINFO_HEADER_OUT", name, ok)
	}
}

func TestNewRegistry_Idempotent(t *testing.T) {
	a := option.NewRegistry("test/1.0", option.CurlConstants())
	b := option.NewRegistry("test/1.0", option.CurlConstants())

	if diff := cmp.Diff(a.IDs(), b.IDs()); diff != "" {
		t.Fatalf("ids differ (-a +b):\n%s", diff)
	}

	for _, id := range a.IDs() {
		na, _ := a.Name(id)
		nb, _ := b.Name(id)
		if na != nb {
			t.Errorf("Name(%d): %q != %q", id, na, nb)
		}
	}
}

func TestNewRegistry_Empty(t *testing.T) {
	reg := option.NewRegistry("test/1.0", nil)

	if reg.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", reg.Len())
	}

	if _, err := option.NewCollection(reg); err == nil {
		t.Fatal("expected defaults to be rejected by an empty registry")
	}
}

func TestRegistry_Lookup(t *testing.T) {
	reg := option.NewRegistry("test/1.0", option.CurlConstants())

	for _, name := range []string{"CURLOPT_ENCODING", "CURLOPT_ACCEPT_ENCODING"} {
		id, ok := reg.Lookup(name)
		if !ok || id != option.AcceptEncoding {
			t.Errorf("Lookup(%q) = %d, %v; want %d", name, id, ok, option.AcceptEncoding)
		}
	}

	if _, ok := reg.Lookup("CURLE_OK"); ok {
		t.Error("Lookup(CURLE_OK) should not resolve a non-settable constant")
	}
}

func TestRegistry_IDsSorted(t *testing.T) {
	reg := option.NewRegistry("test/1.0", option.CurlConstants())
	ids := reg.IDs()

	if len(ids) != reg.Len() {
		t.Fatalf("len(IDs()) = %d, want %d", len(ids), reg.Len())
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("IDs() not strictly ascending at %d: %d >= %d", i, ids[i-1], ids[i])
		}
	}
	if ids[0] != option.HeaderOut {
		t.Errorf("IDs()[0] = %d, want %d", ids[0], option.HeaderOut)
	}
}
