package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

// Shard file name patterns produced by the crawl and parse commands.
// The merge step groups by the captured identifier and orders shards by
// the captured numeric offset or page.
var (
	topicShardName    = regexp.MustCompile(`^topic_(\d+)-(\d+)_parsed\.xlsx$`)
	electionShardName = regexp.MustCompile(`^(election_[A-Za-z0-9-]+)_page_(\d+)\.xlsx$`)
)

// shard is one workbook file belonging to a merge group.
type shard struct {
	name  string
	order int
}

// MergeTopics concatenates per-page post workbooks
// (topic_<id>-<start>_parsed.xlsx) in inDir into one topic_<id>.xlsx per
// topic under outDir, rows ordered by start offset. It returns the names
// of the merged files it wrote. Files that do not match the shard
// pattern are ignored.
func MergeTopics(inDir, outDir string) ([]string, error) {
	groups, err := collectShards(inDir, func(name string) (string, int, bool) {
		m := topicShardName.FindStringSubmatch(name)
		if m == nil {
			return "", 0, false
		}
		start, _ := strconv.Atoi(m[2])
		return m[1], start, true
	})
	if err != nil {
		return nil, err
	}
	return mergeGroups(inDir, outDir, groups, func(topicID string) string {
		return fmt.Sprintf("topic_%s.xlsx", topicID)
	})
}

// MergeElections concatenates per-page vote workbooks
// (election_<id>_page_<n>.xlsx) in inDir into one <election_id>.xlsx per
// election under outDir, rows ordered by page number.
func MergeElections(inDir, outDir string) ([]string, error) {
	groups, err := collectShards(inDir, func(name string) (string, int, bool) {
		m := electionShardName.FindStringSubmatch(name)
		if m == nil {
			return "", 0, false
		}
		page, _ := strconv.Atoi(m[2])
		return m[1], page, true
	})
	if err != nil {
		return nil, err
	}
	return mergeGroups(inDir, outDir, groups, func(electionID string) string {
		return electionID + ".xlsx"
	})
}

// collectShards scans inDir and groups matching file names by the
// identifier the classify function extracts.
func collectShards(inDir string, classify func(name string) (id string, order int, ok bool)) (map[string][]shard, error) {
	entries, err := os.ReadDir(inDir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", inDir, err)
	}

	groups := make(map[string][]shard)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id, order, ok := classify(entry.Name())
		if !ok {
			continue
		}
		groups[id] = append(groups[id], shard{name: entry.Name(), order: order})
	}
	return groups, nil
}

// mergeGroups reads each group's shards in order and writes one combined
// workbook per group. The header row is taken from the first shard;
// subsequent shards contribute data rows only.
func mergeGroups(inDir, outDir string, groups map[string][]shard, outName func(id string) string) ([]string, error) {
	if len(groups) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return nil, fmt.Errorf("create merge directory: %w", err)
	}

	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var merged []string
	for _, id := range ids {
		shards := groups[id]
		sort.Slice(shards, func(i, j int) bool { return shards[i].order < shards[j].order })

		var header []string
		var rows [][]string
		for _, s := range shards {
			shardRows, err := ReadRows(filepath.Join(inDir, s.name))
			if err != nil {
				return merged, err
			}
			if len(shardRows) == 0 {
				continue
			}
			if header == nil {
				header = shardRows[0]
			}
			rows = append(rows, shardRows[1:]...)
		}
		if header == nil {
			continue
		}

		name := outName(id)
		if err := writeWorkbook(filepath.Join(outDir, name), header, rows); err != nil {
			return merged, err
		}
		merged = append(merged, name)
	}
	return merged, nil
}
