// Package extract converts raw page markup into normalized tabular
// records: forum posts with their author metadata, or voter-name/vote
// pairs from election rolls.
//
// Extraction is a pure function of the markup. There is no network
// access and no state between calls, so re-running extraction over the
// same page always yields an identical record sequence. A page with
// nothing extractable yields an empty slice, not an error, and a single
// malformed row never aborts the rest of its page.
//
// Design decision: We query the DOM with goquery rather than walking
// x/net/html nodes directly because both rule sets are written in terms
// of tag+class lookups (phpBB and Helios markup is class-driven), and
// selector expressions keep the rules legible next to the markup they
// target.
package extract
