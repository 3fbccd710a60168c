// Package fetch performs single validated GETs and classifies each
// response as usable, empty, an error page, or a transport failure.
//
// Classification always runs before structural extraction: the extractor
// is only ever handed usable results. Error-page detection is a
// substring scan over locale-keyed marker phrases, not a parse, because
// the forum renders its failure pages from many skins but the phrases
// stay stable.
package fetch
