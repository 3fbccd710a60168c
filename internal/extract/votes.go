package extract

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/zvalenta/forumscan/internal/model"
)

// unknownTitle is used when the page heading is missing.
const unknownTitle = "Unknown"

// emDash separates the ballot title from the election name in the page
// heading, and marks an uncast vote in the table.
const emDash = "—"

// Votes extracts voter rows from an election roll page. The ballot title
// comes from the page heading, truncated at the em-dash separator; each
// table row past the header yields one record. Rows with fewer than two
// cells are skipped; a page without the voter table yields an empty
// slice.
func Votes(r io.Reader) ([]model.VoteRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	title := unknownTitle
	if heading := doc.Find("h3.title").First(); heading.Length() > 0 {
		raw := selectionText(heading)
		title = cleanText(strings.SplitN(raw, emDash, 2)[0])
	}

	var records []model.VoteRecord
	table := doc.Find("table.pretty").First()
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header row
		}
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		records = append(records, model.VoteRecord{
			Title: title,
			Name:  selectionText(cells.Eq(0)),
			Vote:  voteValue(selectionText(cells.Eq(1))),
		})
	})

	return records, nil
}

// voteValue maps the raw vote cell text to {0,1}: an em-dash or an empty
// cell is an uncast vote, anything else counts as cast.
func voteValue(raw string) int {
	switch raw {
	case "", emDash, "&mdash;":
		return 0
	default:
		return 1
	}
}
