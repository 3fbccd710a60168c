package extract

import (
	"strings"
	"testing"

	"github.com/zvalenta/forumscan/internal/model"
)

const votesPage = `
<html><body>
<h3 class="title">Volba předsedy — Celostátní fórum 2022</h3>
<table class="pretty">
  <tr><th>Jméno</th><th>Hlas</th></tr>
  <tr><td>Alice Nováková</td><td>Ano</td></tr>
  <tr><td>Bob Svoboda</td><td>—</td></tr>
  <tr><td>Carol Dvořáková</td><td></td></tr>
  <tr><td>Dave Černý</td><td>Proti všem</td></tr>
</table>
</body></html>`

func TestVotes(t *testing.T) {
	t.Parallel()

	t.Run("extracts voter rows with normalized vote values", func(t *testing.T) {
		t.Parallel()

		records, err := Votes(strings.NewReader(votesPage))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []model.VoteRecord{
			{Title: "Volba předsedy", Name: "Alice Nováková", Vote: 1},
			{Title: "Volba předsedy", Name: "Bob Svoboda", Vote: 0},
			{Title: "Volba předsedy", Name: "Carol Dvořáková", Vote: 0},
			{Title: "Volba předsedy", Name: "Dave Černý", Vote: 1},
		}
		if len(records) != len(want) {
			t.Fatalf("expected %d records, got %d", len(want), len(records))
		}
		for i := range want {
			if records[i] != want[i] {
				t.Errorf("record %d: got %+v, want %+v", i, records[i], want[i])
			}
		}
	})

	t.Run("heading without separator is kept whole", func(t *testing.T) {
		t.Parallel()

		markup := `<h3 class="title">Rozpočet 2023</h3>
			<table class="pretty"><tr><th>h</th><th>h</th></tr>
			<tr><td>Alice</td><td>Ano</td></tr></table>`
		records, err := Votes(strings.NewReader(markup))
		if err != nil {
			t.Fatal(err)
		}
		if records[0].Title != "Rozpočet 2023" {
			t.Errorf("expected full heading, got %q", records[0].Title)
		}
	})

	t.Run("missing heading falls back to Unknown", func(t *testing.T) {
		t.Parallel()

		markup := `<table class="pretty"><tr><th>h</th><th>h</th></tr>
			<tr><td>Alice</td><td>Ano</td></tr></table>`
		records, err := Votes(strings.NewReader(markup))
		if err != nil {
			t.Fatal(err)
		}
		if records[0].Title != "Unknown" {
			t.Errorf("expected Unknown title, got %q", records[0].Title)
		}
	})

	t.Run("rows with fewer than two cells are skipped", func(t *testing.T) {
		t.Parallel()

		markup := `<table class="pretty"><tr><th>h</th></tr>
			<tr><td colspan="2">Souhrn</td></tr>
			<tr><td>Alice</td><td>Ano</td></tr></table>`
		records, err := Votes(strings.NewReader(markup))
		if err != nil {
			t.Fatal(err)
		}
		if len(records) != 1 || records[0].Name != "Alice" {
			t.Errorf("expected the single complete row, got %+v", records)
		}
	})

	t.Run("page without the voter table yields empty slice", func(t *testing.T) {
		t.Parallel()

		records, err := Votes(strings.NewReader(`<html><body><h3 class="title">X</h3></body></html>`))
		if err != nil {
			t.Fatal(err)
		}
		if len(records) != 0 {
			t.Errorf("expected no records, got %d", len(records))
		}
	})
}
