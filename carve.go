package carvekit

import "github.com/gobeaver/carvekit/sigscan"

// fallbackStrategy describes payloads whose framing walk failed.
const fallbackStrategy = "carved to the next candidate signature or the end of the buffer"

// DetectCarvedPayloads scans data for embedded containers and reports one
// payload per detected container. Every signature in the catalog is tried
// at every byte offset, so payloads may nest and overlap.
//
// When a format's framing walk locates the end of a container, the payload
// gets high confidence; formats whose end locator is a content heuristic
// get medium. When the walk fails, the payload is carved to the next
// candidate signature or the end of the buffer with low confidence.
//
// Results keep ascending start order. An empty buffer, or a findings cap
// of zero or less, yields no results.
func DetectCarvedPayloads(data []byte, opts ...Option) []CarvedPayload {
	return detectPayloads(data, newOptions(opts))
}

func detectPayloads(data []byte, o Options) []CarvedPayload {
	if len(data) == 0 || o.MaxFindings <= 0 {
		return nil
	}

	detectors := selectDetectors(o.Kinds)
	if o.Kinds != nil && len(detectors) == 0 {
		return nil
	}
	candidates := sigscan.FindCandidates(data, detectors...)

	type span struct {
		kind       sigscan.Kind
		start, end int
	}
	seen := make(map[span]struct{})

	var findings []CarvedPayload
	for i, cand := range candidates {
		format := cand.Detector.Format()
		start := cand.Offset

		confidence := ConfidenceHigh
		if format.Heuristic {
			confidence = ConfidenceMedium
		}
		strategy := format.Strategy

		end, ok := cand.Detector.FindEnd(data, start)
		if ok && (end <= start || end > len(data)) {
			// A detector that reports success must still produce a
			// span inside the buffer.
			ok = false
		}
		if !ok {
			// Carve to the next candidate that starts past this one,
			// or to the end of the buffer.
			end = len(data)
			for _, next := range candidates[i+1:] {
				if next.Offset > start {
					end = next.Offset
					break
				}
			}
			if end <= start {
				continue
			}
			confidence = ConfidenceLow
			strategy = fallbackStrategy
		}

		key := span{format.Kind, start, end}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		payload := CarvedPayload{
			Kind:       format.Kind,
			Label:      format.Label,
			Extension:  format.Extension,
			MIME:       format.MIME,
			Signature:  format.Signature,
			Start:      start,
			End:        end,
			Length:     end - start,
			Confidence: confidence,
			Strategy:   strategy,
		}
		if o.Selector != nil && !o.Selector.Match(payload) {
			continue
		}
		if o.Digest != "" {
			if digest, err := ChecksumBytes(data[start:end], o.Digest); err == nil {
				payload.Digest = digest
			}
		}

		findings = append(findings, payload)
		if len(findings) >= o.MaxFindings {
			break
		}
	}
	return findings
}

// selectDetectors maps a kind restriction to catalog detectors, keeping
// catalog order. A nil restriction selects the whole catalog; unknown
// kinds are ignored.
func selectDetectors(kinds []sigscan.Kind) []sigscan.Detector {
	if kinds == nil {
		return nil
	}
	want := make(map[sigscan.Kind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	var detectors []sigscan.Detector
	for _, det := range sigscan.Catalog() {
		if want[det.Format().Kind] {
			detectors = append(detectors, det)
		}
	}
	return detectors
}
