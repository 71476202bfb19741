package ingest

// Queue is the ordered set of files waiting to be processed, unique by SourcePath.
type Queue struct {
	files []File
	index map[string]int
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{index: make(map[string]int)}
}

// Merge adds files to the queue. Files without a CSV/TSV extension are dropped; a
// file whose SourcePath is already queued replaces the queued one in place. It
// returns the number of files accepted.
func (q *Queue) Merge(files ...File) int {
	accepted := 0
	for _, f := range files {
		if !Accepts(f.Name) {
			continue
		}
		accepted++

		if i, ok := q.index[f.SourcePath]; ok {
			q.files[i] = f
			continue
		}
		q.index[f.SourcePath] = len(q.files)
		q.files = append(q.files, f)
	}
	return accepted
}

// Files returns the queued files in queue order.
func (q *Queue) Files() []File {
	out := make([]File, len(q.files))
	copy(out, q.files)
	return out
}

// Len returns the number of queued files.
func (q *Queue) Len() int {
	return len(q.files)
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.files = nil
	q.index = make(map[string]int)
}
