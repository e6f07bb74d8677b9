// Package analysis derives quantities from recorded runs.
//
//   - [DominantPeriod]: orbital or seasonal period from a sampled series
//   - [LyapunovExponent]: growth rate of a small displacement between two
//     runs, positive for chaotic systems such as the trisolar preset
package analysis
