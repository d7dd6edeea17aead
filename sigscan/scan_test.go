package sigscan

import "testing"

func TestFindCandidates(t *testing.T) {
	jpeg := buildJPEG(nil)
	zip := buildZIP("")

	data := append([]byte{}, jpeg...)
	data = append(data, 0x00, 0x00, 0x00)
	data = append(data, zip...)

	candidates := FindCandidates(data)
	if len(candidates) != 2 {
		t.Fatalf("FindCandidates() returned %d candidates, want 2", len(candidates))
	}
	if kind := candidates[0].Detector.Format().Kind; kind != KindJPEG {
		t.Errorf("candidates[0] kind = %q, want %q", kind, KindJPEG)
	}
	if candidates[0].Offset != 0 {
		t.Errorf("candidates[0] offset = %d, want 0", candidates[0].Offset)
	}
	if kind := candidates[1].Detector.Format().Kind; kind != KindZIP {
		t.Errorf("candidates[1] kind = %q, want %q", kind, KindZIP)
	}
	if want := len(jpeg) + 3; candidates[1].Offset != want {
		t.Errorf("candidates[1] offset = %d, want %d", candidates[1].Offset, want)
	}
}

func TestFindCandidatesEmpty(t *testing.T) {
	if got := FindCandidates(nil); got != nil {
		t.Errorf("FindCandidates(nil) = %v, want nil", got)
	}
	if got := FindCandidates([]byte{}); got != nil {
		t.Errorf("FindCandidates(empty) = %v, want nil", got)
	}
}

func TestFindCandidatesNoMatches(t *testing.T) {
	data := []byte("just some text with no container signatures in it")
	if got := FindCandidates(data); len(got) != 0 {
		t.Errorf("FindCandidates() returned %d candidates, want 0", len(got))
	}
}

func TestFindCandidatesNestedSignature(t *testing.T) {
	// A TIFF signature buried inside PNG chunk data is still a candidate.
	b := append([]byte{}, pngSignature...)
	b = appendChunk(b, "IHDR", make([]byte, 13))
	b = appendChunk(b, "tEXt", []byte{0x49, 0x49, 0x2A, 0x00})
	b = appendChunk(b, "IEND", nil)

	candidates := FindCandidates(b)
	if len(candidates) != 2 {
		t.Fatalf("FindCandidates() returned %d candidates, want 2", len(candidates))
	}
	if kind := candidates[0].Detector.Format().Kind; kind != KindPNG {
		t.Errorf("candidates[0] kind = %q, want %q", kind, KindPNG)
	}
	if kind := candidates[1].Detector.Format().Kind; kind != KindTIFF {
		t.Errorf("candidates[1] kind = %q, want %q", kind, KindTIFF)
	}
	if candidates[0].Offset >= candidates[1].Offset {
		t.Errorf("offsets not ascending: %d then %d", candidates[0].Offset, candidates[1].Offset)
	}
}

func TestFindCandidatesRestrictedDetectors(t *testing.T) {
	data := append(buildJPEG(nil), buildZIP("")...)

	png, _ := Lookup(KindPNG)
	zip, _ := Lookup(KindZIP)

	candidates := FindCandidates(data, png, zip)
	if len(candidates) != 1 {
		t.Fatalf("FindCandidates() returned %d candidates, want 1", len(candidates))
	}
	if kind := candidates[0].Detector.Format().Kind; kind != KindZIP {
		t.Errorf("candidates[0] kind = %q, want %q", kind, KindZIP)
	}
}

func TestFindCandidatesDuplicateDetector(t *testing.T) {
	data := buildZIP("")

	zip, _ := Lookup(KindZIP)
	candidates := FindCandidates(data, zip, zip)
	if len(candidates) != 1 {
		t.Errorf("FindCandidates() returned %d candidates, want 1", len(candidates))
	}
}
