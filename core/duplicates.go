package core

import (
	"path"
	"sort"
	"strings"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

// DuplicateOptions filters which records participate in duplicate
// detection. Zero values disable the corresponding filter.
type DuplicateOptions struct {
	MinSizeBytes int64
	IncludeExts  []string // Normalized, leading dot
	ExcludeExts  []string
}

// DetectDuplicates groups records by content hash and reports every group
// with two or more members. Records without a content hash never group.
// Groups come back ordered by wasted bytes descending, with the content
// hash as tiebreak; files inside a group keep their input order, so the
// first member is the canonical copy.
func DetectDuplicates(records []schema.FileRecord, opts DuplicateOptions) *schema.DuplicateAnalysisResult {
	result := &schema.DuplicateAnalysisResult{
		TotalFilesAnalyzed: len(records),
	}

	groups := make(map[string][]schema.FileRecord)
	var hashOrder []string

	for _, record := range records {
		if record.ContentHash == "" {
			continue
		}
		if !passesDuplicateFilters(record, opts) {
			continue
		}
		result.FilesWithHash++

		if _, seen := groups[record.ContentHash]; !seen {
			hashOrder = append(hashOrder, record.ContentHash)
		}
		groups[record.ContentHash] = append(groups[record.ContentHash], record)
	}

	var duplicateGroups []schema.DuplicateGroup
	var wastedBytes, duplicatedBytes int64
	for _, hash := range hashOrder {
		members := groups[hash]
		if len(members) < 2 {
			continue
		}

		var totalSize int64
		for _, m := range members {
			totalSize += m.SizeBytes
		}
		// All members share content, so every copy past the first is waste.
		wasted := totalSize - members[0].SizeBytes

		duplicateGroups = append(duplicateGroups, schema.DuplicateGroup{
			ContentHash:    hash,
			Files:          members,
			TotalSizeBytes: totalSize,
			WastedBytes:    wasted,
		})
		result.TotalDuplicateFiles += len(members)
		wastedBytes += wasted
		duplicatedBytes += totalSize
	}

	sort.SliceStable(duplicateGroups, func(i, j int) bool {
		if duplicateGroups[i].WastedBytes != duplicateGroups[j].WastedBytes {
			return duplicateGroups[i].WastedBytes > duplicateGroups[j].WastedBytes
		}
		return duplicateGroups[i].ContentHash < duplicateGroups[j].ContentHash
	})

	result.DuplicateGroups = duplicateGroups
	result.TotalWastedBytes = wastedBytes
	// Savings are relative to the bytes held by duplicate groups, zero when
	// no group exists.
	if duplicatedBytes > 0 {
		result.SpaceSavingsPercent = float64(wastedBytes) / float64(duplicatedBytes) * 100
	}
	return result
}

// passesDuplicateFilters applies the size and extension filters to one record.
func passesDuplicateFilters(record schema.FileRecord, opts DuplicateOptions) bool {
	if opts.MinSizeBytes > 0 && record.SizeBytes < opts.MinSizeBytes {
		return false
	}
	ext := strings.ToLower(path.Ext(record.Path))
	if len(opts.IncludeExts) > 0 && !containsString(opts.IncludeExts, ext) {
		return false
	}
	if containsString(opts.ExcludeExts, ext) {
		return false
	}
	return true
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
