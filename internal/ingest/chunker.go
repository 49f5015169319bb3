package ingest

import (
	"strings"

	"docqa/internal/extractor"
)

const (
	// DefaultChunkSize is the target fragment length in characters.
	DefaultChunkSize = 1000
	// OverlapSize is the number of trailing characters carried into the
	// next fragment. Fixed; not configurable.
	OverlapSize = 200
)

// Chunker splits extracted page text into overlapping fixed-size fragments,
// each tagged with the pages it spans.
type Chunker struct {
	size int
}

// NewChunker creates a chunker with the given target fragment size.
// Sizes not larger than the overlap fall back to the default, since the
// buffer would otherwise never drain.
func NewChunker(size int) *Chunker {
	if size <= OverlapSize {
		size = DefaultChunkSize
	}
	return &Chunker{size: size}
}

// Chunk concatenates page text in page order and emits fragments of exactly
// the configured size, except the last which may be shorter. Each character
// is attributed to its source page, so the pages carried into a fragment by
// the overlap are tracked exactly. A trailing buffer that is entirely
// whitespace is discarded.
func (c *Chunker) Chunk(pages []extractor.Page) []Fragment {
	var (
		fragments []Fragment
		buf       []rune
		pageOf    []int // source page per rune in buf
	)

	for _, page := range pages {
		for _, r := range page.Text {
			buf = append(buf, r)
			pageOf = append(pageOf, page.Index)

			if len(buf) >= c.size {
				fragments = append(fragments, Fragment{
					Text:  string(buf),
					Pages: dedupOrdered(pageOf),
				})
				// Carry the overlap forward, keeping per-rune page
				// attribution aligned with the text.
				buf = append([]rune(nil), buf[len(buf)-OverlapSize:]...)
				pageOf = append([]int(nil), pageOf[len(pageOf)-OverlapSize:]...)
			}
		}
	}

	if strings.TrimSpace(string(buf)) != "" {
		fragments = append(fragments, Fragment{
			Text:  string(buf),
			Pages: dedupOrdered(pageOf),
		})
	}

	return fragments
}

// dedupOrdered returns the distinct page indices in first-occurrence order.
// An ordered slice rather than a set keeps the page list deterministic in
// stored metadata.
func dedupOrdered(pages []int) []int {
	seen := make(map[int]struct{}, 4)
	out := make([]int, 0, 4)
	for _, p := range pages {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
