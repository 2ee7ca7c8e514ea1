package textutil

import "testing"

func TestLookupEncoding(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{name: "ISO-8859-1"},
		{name: "latin1"},
		{name: "windows-1252"},
		{name: "UTF-8"},
		{name: "", wantErr: true},
		{name: "definitely-not-a-charset", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := LookupEncoding(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("LookupEncoding(%q) returned error: %v", tt.name, err)
			}
			if enc == nil {
				t.Fatalf("expected encoding for %q", tt.name)
			}
		})
	}
}

func TestDecodeLatin1(t *testing.T) {
	enc, err := LookupEncoding("ISO-8859-1")
	if err != nil {
		t.Fatal(err)
	}
	// 0xE9 is e-acute in Latin-1 and an invalid lone byte in UTF-8.
	got, err := Decode(enc, []byte{'c', 'a', 'f', 0xE9})
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if got != "café" {
		t.Fatalf("unexpected decode: got %q want %q", got, "café")
	}
}

func TestDecodeEmptyAndNil(t *testing.T) {
	got, err := Decode(nil, nil)
	if err != nil || got != "" {
		t.Fatalf("expected empty result, got %q err=%v", got, err)
	}
	got, err = Decode(nil, []byte("plain"))
	if err != nil || got != "plain" {
		t.Fatalf("expected passthrough, got %q err=%v", got, err)
	}
}
