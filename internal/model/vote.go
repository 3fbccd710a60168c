package model

import "strconv"

// VoteRecord is one voter row extracted from an election roll page.
type VoteRecord struct {
	// Title is the ballot item title, taken from the page heading up to
	// the em-dash separator ("Unknown" when the heading is missing).
	Title string

	// Name is the voter's name from the first table cell.
	Name string

	// Vote is 1 when the voter cast a ballot, 0 when the vote cell is
	// empty or an em-dash.
	Vote int
}

// VoteColumns is the canonical output column order for vote records.
var VoteColumns = []string{"title", "name", "vote"}

// Row returns the record's values in VoteColumns order.
func (v VoteRecord) Row() []string {
	return []string{v.Title, v.Name, strconv.Itoa(v.Vote)}
}
