// Package version assigns monotonically increasing output versions to files and
// derives the versioned output filenames.
package version

import (
	"path"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

var suffixPattern = regexp.MustCompile(`[-_]v(\d+)$`)

// Tracker maps a file identity (its ingestion path) to the last version handed out
// for it. It lives for one session and is safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	versions map[string]int
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{versions: make(map[string]int)}
}

// Next returns the next version for identity and records it. An identity seen for
// the first time continues from a "-vN" or "_vN" suffix on its filename, or starts
// at 1.
func (t *Tracker) Next(identity string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev, ok := t.versions[identity]
	if !ok {
		_, prev, _ = ParseSuffix(path.Base(identity))
	}
	next := prev + 1
	t.versions[identity] = next
	return next
}

// Peek returns the last version recorded for identity in this session.
func (t *Tracker) Peek(identity string) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.versions[identity]
	return v, ok
}

// Forget drops the record for identity, as when a file is requeued.
func (t *Tracker) Forget(identity string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.versions, identity)
}

// Clear drops every record.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.versions = make(map[string]int)
}

// ParseSuffix splits a filename into its stem without version suffix and the
// version number. The extension is not part of the returned stem.
//
//	ParseSuffix("report-v2.csv") == ("report", 2, true)
//	ParseSuffix("report.csv")    == ("report", 0, false)
func ParseSuffix(filename string) (string, int, bool) {
	stem, _ := splitExt(filename)
	loc := suffixPattern.FindStringSubmatchIndex(stem)
	if loc == nil {
		return stem, 0, false
	}

	v, err := strconv.Atoi(stem[loc[2]:loc[3]])
	if err != nil {
		// too many digits to be a version we handed out
		return stem, 0, false
	}
	return stem[:loc[0]], v, true
}

// Name builds the output filename for version v, replacing any existing version
// suffix and keeping the extension: Name("report-v2.csv", 3) == "report-v3.csv".
func Name(filename string, v int) string {
	stem, _, _ := ParseSuffix(filename)
	_, ext := splitExt(filename)
	return stem + "-v" + strconv.Itoa(v) + ext
}

// EntryPath replaces the filename segment of sourcePath with outputName, keeping
// the folders: EntryPath("in/data.csv", "data-v1.csv") == "in/data-v1.csv".
func EntryPath(sourcePath, outputName string) string {
	dir := path.Dir(sourcePath)
	if dir == "." {
		return outputName
	}
	return path.Join(dir, outputName)
}

func splitExt(filename string) (string, string) {
	dot := strings.LastIndex(filename, ".")
	if dot < 0 {
		return filename, ""
	}
	return filename[:dot], filename[dot:]
}
