package sink

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/zvalenta/forumscan/internal/model"
)

func TestMergeTopics(t *testing.T) {
	t.Parallel()

	t.Run("concatenates shards of one topic by start offset", func(t *testing.T) {
		t.Parallel()

		inDir := t.TempDir()
		outDir := filepath.Join(inDir, "merged")

		first := testPost("1")
		second := testPost("2")
		third := testPost("3")

		// Written out of order on purpose; the merge must sort by the
		// numeric start offset, not by directory listing order.
		writeShard(t, inDir, "topic_38314-10_parsed.xlsx", []model.PostRecord{second})
		writeShard(t, inDir, "topic_38314-0_parsed.xlsx", []model.PostRecord{first})
		writeShard(t, inDir, "topic_38314-20_parsed.xlsx", []model.PostRecord{third})

		merged, err := MergeTopics(inDir, outDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(merged, []string{"topic_38314.xlsx"}) {
			t.Fatalf("expected one merged file, got %v", merged)
		}

		rows, err := ReadRows(filepath.Join(outDir, "topic_38314.xlsx"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := [][]string{model.PostColumns, first.Row(), second.Row(), third.Row()}
		if !reflect.DeepEqual(rows, want) {
			t.Errorf("merged rows mismatch:\n got: %v\nwant: %v", rows, want)
		}
	})

	t.Run("separate topics merge into separate files", func(t *testing.T) {
		t.Parallel()

		inDir := t.TempDir()
		outDir := filepath.Join(inDir, "merged")

		writeShard(t, inDir, "topic_1-0_parsed.xlsx", []model.PostRecord{testPost("1")})
		writeShard(t, inDir, "topic_2-0_parsed.xlsx", []model.PostRecord{testPost("2")})

		merged, err := MergeTopics(inDir, outDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(merged, []string{"topic_1.xlsx", "topic_2.xlsx"}) {
			t.Errorf("expected two merged files, got %v", merged)
		}
	})

	t.Run("non-shard files are ignored", func(t *testing.T) {
		t.Parallel()

		inDir := t.TempDir()
		if err := os.WriteFile(filepath.Join(inDir, "notes.txt"), []byte("x"), filePerm); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(inDir, "topic_38314-0.html"), []byte("x"), filePerm); err != nil {
			t.Fatal(err)
		}

		merged, err := MergeTopics(inDir, filepath.Join(inDir, "merged"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(merged) != 0 {
			t.Errorf("expected nothing to merge, got %v", merged)
		}
	})
}

func TestMergeElections(t *testing.T) {
	t.Parallel()

	inDir := t.TempDir()
	outDir := filepath.Join(inDir, "merged")

	pageOne := []model.VoteRecord{{Title: "Volba předsedy", Name: "Alice", Vote: 1}}
	pageTwo := []model.VoteRecord{{Title: "Volba předsedy", Name: "Bob", Vote: 0}}

	if err := WriteVotes(filepath.Join(inDir, "election_cf2022_page_2.xlsx"), pageTwo); err != nil {
		t.Fatal(err)
	}
	if err := WriteVotes(filepath.Join(inDir, "election_cf2022_page_1.xlsx"), pageOne); err != nil {
		t.Fatal(err)
	}

	merged, err := MergeElections(inDir, outDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(merged, []string{"election_cf2022.xlsx"}) {
		t.Fatalf("expected one merged file, got %v", merged)
	}

	rows, err := ReadRows(filepath.Join(outDir, "election_cf2022.xlsx"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{
		model.VoteColumns,
		{"Volba předsedy", "Alice", "1"},
		{"Volba předsedy", "Bob", "0"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("merged rows mismatch:\n got: %v\nwant: %v", rows, want)
	}
}

func writeShard(t *testing.T, dir, name string, records []model.PostRecord) {
	t.Helper()
	if err := WritePosts(filepath.Join(dir, name), records); err != nil {
		t.Fatalf("write shard %s: %v", name, err)
	}
}
