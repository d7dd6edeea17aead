package sigscan

import "testing"

func TestCatalogOrder(t *testing.T) {
	want := []Kind{KindPNG, KindJPEG, KindGIF, KindWebP, KindBMP, KindTIFF, KindPDF, KindZIP}

	got := Catalog()
	if len(got) != len(want) {
		t.Fatalf("Catalog() returned %d detectors, want %d", len(got), len(want))
	}
	for i, det := range got {
		if det.Format().Kind != want[i] {
			t.Errorf("Catalog()[%d].Format().Kind = %q, want %q", i, det.Format().Kind, want[i])
		}
	}
}

func TestCatalogMetadata(t *testing.T) {
	for _, det := range Catalog() {
		f := det.Format()
		t.Run(string(f.Kind), func(t *testing.T) {
			if f.Label == "" {
				t.Error("Label is empty")
			}
			if f.Extension == "" || f.Extension[0] != '.' {
				t.Errorf("Extension = %q, want dotted extension", f.Extension)
			}
			if f.MIME == "" {
				t.Error("MIME is empty")
			}
			if f.Signature == "" {
				t.Error("Signature is empty")
			}
			if f.Strategy == "" {
				t.Error("Strategy is empty")
			}
		})
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		kind  Kind
		found bool
	}{
		{KindPNG, true},
		{KindZIP, true},
		{KindTIFF, true},
		{Kind("mp4"), false},
		{Kind(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			det, ok := Lookup(tt.kind)
			if ok != tt.found {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.kind, ok, tt.found)
			}
			if ok && det.Format().Kind != tt.kind {
				t.Errorf("Lookup(%q).Format().Kind = %q", tt.kind, det.Format().Kind)
			}
		})
	}
}

func TestTIFFMatches(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected bool
	}{
		{"little endian", []byte{0x49, 0x49, 0x2A, 0x00, 0x08, 0x00, 0x00, 0x00}, true},
		{"big endian", []byte{0x4D, 0x4D, 0x00, 0x2A, 0x00, 0x00, 0x00, 0x08}, true},
		{"mixed order", []byte{0x49, 0x4D, 0x2A, 0x00}, false},
		{"truncated", []byte{0x49, 0x49, 0x2A}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := (tiffDetector{}).Matches(tt.data, 0)
			if result != tt.expected {
				t.Errorf("Matches() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestTIFFFindEndNeverSucceeds(t *testing.T) {
	data := []byte{0x49, 0x49, 0x2A, 0x00, 0x08, 0x00, 0x00, 0x00}
	if _, ok := (tiffDetector{}).FindEnd(data, 0); ok {
		t.Error("FindEnd() ok = true, want false")
	}
}

func TestMatchAt(t *testing.T) {
	data := []byte("abcdef")

	tests := []struct {
		name     string
		offset   int
		sig      []byte
		expected bool
	}{
		{"match at start", 0, []byte("abc"), true},
		{"match inside", 2, []byte("cde"), true},
		{"match at end", 3, []byte("def"), true},
		{"runs past end", 4, []byte("efg"), false},
		{"negative offset", -1, []byte("ab"), false},
		{"offset past end", 6, []byte("a"), false},
		{"mismatch", 0, []byte("abd"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := matchAt(data, tt.offset, tt.sig)
			if result != tt.expected {
				t.Errorf("matchAt(%d, %q) = %v, want %v", tt.offset, tt.sig, result, tt.expected)
			}
		})
	}
}
