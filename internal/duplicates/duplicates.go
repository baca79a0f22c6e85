// Package duplicates finds string values that occur more than once in a JSON document.
package duplicates

import (
	"sort"
	"strings"

	"github.com/mcncl/jsonlens/internal/models"
	"github.com/mcncl/jsonlens/internal/pathaddr"
)

// StringIndex maps every string leaf value of a document to the canonical
// paths it occurs at, remembering the order values were first discovered.
type StringIndex struct {
	order []string
	paths map[string][]string
	total int
}

// Values returns the distinct string values in first-discovery order.
func (s *StringIndex) Values() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Paths returns the paths of value in traversal order, or nil.
func (s *StringIndex) Paths(value string) []string {
	paths := s.paths[value]
	if paths == nil {
		return nil
	}
	out := make([]string, len(paths))
	copy(out, paths)
	return out
}

// Len returns the number of distinct string values.
func (s *StringIndex) Len() int {
	return len(s.order)
}

// Total returns the number of string leaves.
func (s *StringIndex) Total() int {
	return s.total
}

func (s *StringIndex) add(value string, at pathaddr.Path) {
	if _, seen := s.paths[value]; !seen {
		s.order = append(s.order, value)
	}
	s.paths[value] = append(s.paths[value], at.String())
	s.total++
}

// Collect walks value once in pre-order (object members in insertion order,
// array elements by index) and indexes every string leaf.
func Collect(value models.JSONValue) *StringIndex {
	idx := &StringIndex{paths: make(map[string][]string)}
	collect(value, pathaddr.Root(), idx)
	return idx
}

func collect(value models.JSONValue, at pathaddr.Path, idx *StringIndex) {
	switch node := value.(type) {
	case string:
		idx.add(node, at)
	case *models.JSONObject:
		if node == nil {
			return
		}
		node.Range(func(key string, child models.JSONValue) bool {
			collect(child, at.Append(pathaddr.Key(key)), idx)
			return true
		})
	case models.JSONArray:
		for i, child := range node {
			collect(child, at.Append(pathaddr.Index(i)), idx)
		}
	}
}

// FindDuplicates returns one record per string value that occurs at least
// twice, most frequent first. Values with the same count keep the order in
// which they were first discovered.
func FindDuplicates(value models.JSONValue) []models.DuplicateRecord {
	idx := Collect(value)
	records := make([]models.DuplicateRecord, 0)
	for _, v := range idx.order {
		paths := idx.paths[v]
		if len(paths) < 2 {
			continue
		}
		records = append(records, models.DuplicateRecord{
			Value: v,
			Count: len(paths),
			Paths: idx.Paths(v),
		})
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Count > records[j].Count
	})
	return records
}

// Filter keeps the records whose value contains query, ignoring case.
// An empty query keeps everything.
func Filter(records []models.DuplicateRecord, query string) []models.DuplicateRecord {
	if query == "" {
		return records
	}
	needle := strings.ToLower(query)
	out := make([]models.DuplicateRecord, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Value), needle) {
			out = append(out, r)
		}
	}
	return out
}
