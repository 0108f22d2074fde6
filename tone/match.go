package tone

// Contains reports whether any entry of freqs lies within toleranceHz of f.
func Contains(freqs []int, f, toleranceHz int) bool {
	for _, g := range freqs {
		d := g - f
		if d >= -toleranceHz && d <= toleranceHz {
			return true
		}
	}
	return false
}

// Match records the outcome for a single expected tone.
type Match struct {
	FreqHz  int
	Found   bool
	DeltaHz int
}

// Comparison is the result of diffing a detected tone list against an
// expected one. Tones holds one entry per expected tone, in expected order;
// Spurious lists detections within tolerance of no expected tone.
type Comparison struct {
	Tones    []Match
	Spurious []int
}

// Found returns how many expected tones were matched.
func (c Comparison) Found() int {
	n := 0
	for _, m := range c.Tones {
		if m.Found {
			n++
		}
	}
	return n
}

// Compare matches detected frequencies against expected ones. An expected
// tone is Found when some detection lies within toleranceHz of it; DeltaHz
// is detected minus expected for the first such detection. Compare never
// mutates its inputs, so repeated calls yield identical results.
func Compare(expected, detected []int, toleranceHz int) Comparison {
	out := Comparison{Tones: make([]Match, len(expected))}

	for i, e := range expected {
		m := Match{FreqHz: e}
		for _, d := range detected {
			if diff := d - e; diff >= -toleranceHz && diff <= toleranceHz {
				m.Found = true
				m.DeltaHz = diff
				break
			}
		}
		out.Tones[i] = m
	}

	for _, d := range detected {
		if !Contains(expected, d, toleranceHz) {
			out.Spurious = append(out.Spurious, d)
		}
	}

	return out
}
