package panorama

import (
	"path/filepath"
	"testing"
)

const marker = "Custom Rendered                 : Panorama"

func TestMatcherRequiresBothMarkers(t *testing.T) {
	m := NewMatcher("Custom Rendered : Panorama", "Projection Type : equirectangular")
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", false},
		{"neither", "Make : Apple\n", false},
		{"first only", "Custom Rendered : Panorama\n", false},
		{"second only", "Projection Type : equirectangular\n", false},
		{"both", "Custom Rendered : Panorama\nProjection Type : equirectangular\n", true},
		{"both reversed", "Projection Type : equirectangular\nx\nCustom Rendered : Panorama", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Match(tt.text); got != tt.want {
				t.Fatalf("Match(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestMatcherIdenticalMarkers(t *testing.T) {
	m := NewMatcher(marker, marker)
	if !m.Match("Make : Apple\n" + marker + "\n") {
		t.Fatal("expected single occurrence to satisfy identical markers")
	}
	if m.Match("Custom Rendered : Panorama") {
		t.Fatal("expected padding to be significant")
	}
	if m.Match("") {
		t.Fatal("expected empty text to never match")
	}
}

func TestRenamerAdjust(t *testing.T) {
	r := NewRenamer("pano", "_pano")
	tests := []struct {
		in   string
		want string
	}{
		{"IMG_001.jpg", "IMG_001_pano.jpg"},
		{"vacation_pano.heic", "vacation_pano.heic"},
		{filepath.Join("in", "a", "b.jpg"), filepath.Join("in", "a", "b_pano.jpg")},
		{"archive.tar.png", "archive.tar_pano.png"},
		{"noext", "noext_pano"},
		{".hidden", ".hidden_pano"},
		{"PANO_1.jpg", "PANO_1_pano.jpg"},
		{"panorama.png", "panorama.png"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := r.Adjust(tt.in); got != tt.want {
				t.Fatalf("Adjust(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenamerIsIdempotent(t *testing.T) {
	r := NewRenamer("pano", "_pano")
	for _, in := range []string{"IMG_001.jpg", "x.heic", "a/b/c.png", "noext", "vacation_pano.heic"} {
		once := r.Adjust(in)
		twice := r.Adjust(once)
		if once != twice {
			t.Fatalf("Adjust not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestSplitExt(t *testing.T) {
	tests := []struct {
		in, name, ext string
	}{
		{"a.jpg", "a", ".jpg"},
		{"a.b.jpg", "a.b", ".jpg"},
		{".jpg", ".jpg", ""},
		{"..jpg", "..jpg", ""},
		{"a.", "a", "."},
		{"plain", "plain", ""},
	}
	for _, tt := range tests {
		name, ext := splitExt(tt.in)
		if name != tt.name || ext != tt.ext {
			t.Fatalf("splitExt(%q) = (%q, %q), want (%q, %q)", tt.in, name, ext, tt.name, tt.ext)
		}
	}
}
