package ingest

// Fragment is a contiguous slice of document text, the unit of embedding
// and retrieval. Consecutive fragments from the same document share a
// fixed-length overlap so context survives chunk boundaries.
type Fragment struct {
	Text  string // target length is the configured chunk size; the final fragment may be shorter
	Pages []int  // 0-based page indices the text spans, in first-touch order
}

// Result reports the outcome of ingesting a single document.
type Result struct {
	File    string `json:"file"`
	Chunks  int    `json:"chunks"`
	Skipped bool   `json:"skipped,omitempty"`
}
