package sigscan

// Candidate pairs a detector with the buffer offset where its signature
// matched. The detector has not been asked to locate an end yet.
type Candidate struct {
	Detector Detector
	Offset   int
}

// FindCandidates reports every signature match in data. Each offset is
// tested against every detector, so overlapping and nested containers all
// surface. Results come back ordered by offset; matches at the same offset
// keep detector order. Passing no detectors scans with the full catalog.
func FindCandidates(data []byte, detectors ...Detector) []Candidate {
	if len(data) == 0 {
		return nil
	}
	if len(detectors) == 0 {
		detectors = catalog
	}
	type key struct {
		kind   Kind
		offset int
	}
	seen := make(map[key]struct{})
	var candidates []Candidate
	for offset := 0; offset < len(data); offset++ {
		for _, d := range detectors {
			if !d.Matches(data, offset) {
				continue
			}
			k := key{d.Format().Kind, offset}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			candidates = append(candidates, Candidate{Detector: d, Offset: offset})
		}
	}
	return candidates
}
