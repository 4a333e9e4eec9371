// Package grammar classifies input lines into the four sentence forms the
// trade engine understands.
//
// Sentence forms, tried in order:
//   - Unit mapping:          glob is I
//   - Credit sample:         glob glob Silver is 34 Credits
//   - Unit value question:   how much is pish tegj glob glob ?
//   - Total credits question: how many Credits is glob prok Silver ?
//
// Anything else is Unrecognized. Classification is structural only; whether
// the unit words are known is decided later by the session.
package grammar
