package geofence

import (
	"errors"
	"testing"
)

func TestParseSiteID(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
		wantErr bool
	}{
		{name: "json object", payload: `{"siteId":"hq-01"}`, want: "hq-01"},
		{name: "json object with extra fields", payload: `{"siteId":"hq-01","v":2}`, want: "hq-01"},
		{name: "prefixed", payload: "site:warehouse-7", want: "warehouse-7"},
		{name: "prefix keeps remainder verbatim", payload: "site:site:a b", want: "site:a b"},
		{name: "plain text", payload: "hello", wantErr: true},
		{name: "empty", payload: "", wantErr: true},
		{name: "bare prefix", payload: "site:", wantErr: true},
		{name: "json without siteId", payload: `{"id":"hq-01"}`, wantErr: true},
		{name: "json with empty siteId", payload: `{"siteId":""}`, wantErr: true},
		{name: "json with numeric siteId", payload: `{"siteId":42}`, wantErr: true},
		{name: "json null", payload: "null", wantErr: true},
		{name: "json array", payload: `["site:x"]`, wantErr: true},
		{name: "ean-13 digits", payload: "4006381333931", wantErr: true},
		{name: "prefix is case sensitive", payload: "SITE:abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSiteID(tt.payload)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPayload) {
					t.Fatalf("ParseSiteID(%q) err = %v, want ErrInvalidPayload", tt.payload, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSiteID(%q) unexpected err: %v", tt.payload, err)
			}
			if got != tt.want {
				t.Fatalf("ParseSiteID(%q) = %q, want %q", tt.payload, got, tt.want)
			}
		})
	}
}

// A payload that is valid JSON but carries no usable id must not be
// rescued by the prefix rule, even when some field looks prefixed.
func TestParseSiteID_JSONDoesNotFallBackToPrefix(t *testing.T) {
	_, err := ParseSiteID(`{"siteId":"","code":"site:abc"}`)
	if !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}

func TestEncodePayloads_RoundTrip(t *testing.T) {
	for _, id := range []string{"hq-01", "a:b", `quote"d`} {
		jsonPayload, prefixed, err := EncodePayloads(id)
		if err != nil {
			t.Fatalf("EncodePayloads(%q): %v", id, err)
		}
		for _, p := range []string{jsonPayload, prefixed} {
			got, err := ParseSiteID(p)
			if err != nil || got != id {
				t.Fatalf("ParseSiteID(%q) = %q, %v; want %q", p, got, err, id)
			}
		}
	}
}
