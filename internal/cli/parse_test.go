package cli

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/adamwoolhether/xfer/option"
)

func TestParseValue(t *testing.T) {
	testCases := []struct {
		raw string
		exp any
	}{
		{raw: "true", exp: true},
		{raw: "FALSE", exp: false},
		{raw: "30", exp: 30},
		{raw: "-1", exp: -1},
		{raw: "1.5", exp: 1.5},
		{raw: "gzip", exp: "gzip"},
		{raw: "", exp: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			if diff := cmp.Diff(tc.exp, parseValue(tc.raw)); diff != "" {
				t.Errorf("value mismatch (-exp +got):\n%s", diff)
			}
		})
	}
}

func TestParseAssignments(t *testing.T) {
	reg := option.NewRegistry("test", option.CurlConstants())

	got, err := parseAssignments(reg, []string{
		"CURLOPT_MAXREDIRS=3",
		"followlocation=false",
		"ENCODING=gzip",
		"CURLINFO_HEADER_OUT=true",
	})
	if err != nil {
		t.Fatal(err)
	}

	exp := option.Values{
		option.MaxRedirs:      3,
		option.FollowLocation: false,
		option.AcceptEncoding: "gzip",
		option.HeaderOut:      true,
	}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("options mismatch (-exp +got):\n%s", diff)
	}

	if _, err := parseAssignments(reg, []string{"BOGUS=1"}); !errors.Is(err, option.ErrInvalidOption) {
		t.Errorf("exp ErrInvalidOption, got %v", err)
	}
}

func TestParseFields(t *testing.T) {
	got, err := parseFields([]string{"a=1", "b=x=y", "c="})
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(map[string]string{"a": "1", "b": "x=y", "c": ""}, got); diff != "" {
		t.Errorf("fields mismatch (-exp +got):\n%s", diff)
	}

	if _, err := parseFields([]string{"=v"}); err == nil {
		t.Error("exp error for empty key")
	}
}
