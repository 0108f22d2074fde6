// Package tone plans the frequency layout of multi-tone test signals and
// compares detected tone sets against such a plan.
//
// A plan spreads tones-per-channel frequencies evenly across the band
// [audio.MinToneHz, sampleRate/2) and shifts each channel's comb by a
// fraction of the tone spacing, so every channel carries a distinct,
// identifiable set. Planning is deterministic: a generator and an analyzer
// given the same parameters agree on the expected frequencies without
// exchanging any state.
package tone
