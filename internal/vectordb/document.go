package vectordb

// Entry is one vector with the metadata of the file it was computed from.
type Entry struct {
	Vector   []float32
	Metadata Metadata
}

// Metadata identifies the file behind an entry. Path is relative to the
// indexed repository root.
type Metadata struct {
	Path     string `json:"path"`
	Language string `json:"language"`
}

// SearchResult pairs an entry's metadata with its distance from the query.
// Smaller is closer; the metric depends on the backend.
type SearchResult struct {
	Metadata Metadata `json:"metadata"`
	Distance float32  `json:"distance"`
}
