// Package state persists poller cursors between runs. Two schemas exist:
// the per-repository cursor map written by the poll pipeline and the bounded
// SHA log written by the watch pipeline. Loading detects the shape
// structurally and resets to an empty initial state on anything it does not
// recognize: a stale or legacy file must never abort a run.
package state

import (
	"encoding/json"
	"fmt"
	"os"

	"ContentForge/internal/domain"
)

// RepoStateFile is the poll pipeline's on-disk document.
type RepoStateFile struct {
	PostedRepos map[string]domain.RepoPollState `json:"postedRepos"`
}

// RepoStateStore reads and writes the per-repository cursor map. The file is
// read once at loop start and written once at loop end; there is no
// inter-process locking (single-runner assumption).
type RepoStateStore struct {
	path string
}

// NewRepoStateStore binds the store to a file path.
func NewRepoStateStore(path string) *RepoStateStore {
	return &RepoStateStore{path: path}
}

// Load returns the persisted map, or an empty map when the file is missing,
// unreadable, or carries a legacy/unrecognized shape.
func (s *RepoStateStore) Load() RepoStateFile {
	empty := RepoStateFile{PostedRepos: map[string]domain.RepoPollState{}}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return empty
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return empty
	}
	// A SHA-log file (or any other schema) in this slot resets the state
	// rather than erroring.
	if _, ok := probe["postedRepos"]; !ok {
		return empty
	}

	var file RepoStateFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return empty
	}
	if file.PostedRepos == nil {
		file.PostedRepos = map[string]domain.RepoPollState{}
	}
	return file
}

// Save writes the full document atomically enough for a single runner.
func (s *RepoStateStore) Save(file RepoStateFile) error {
	raw, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal poll state: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write poll state: %w", err)
	}
	return nil
}

// ShaLog is the watch pipeline's bounded list of processed commit SHAs,
// newest last. Exceeding the cap evicts the oldest entries first.
type ShaLog struct {
	path string
	cap  int
	shas []string
	seen map[string]struct{}
}

type shaLogFile struct {
	ProcessedSHAs []string `json:"processedSHAs"`
}

// LoadShaLog reads the log from path. Missing, unreadable, or foreign-shaped
// files yield an empty log. Cap values below 1 fall back to 500.
func LoadShaLog(path string, cap int) *ShaLog {
	if cap < 1 {
		cap = 500
	}
	log := &ShaLog{path: path, cap: cap, seen: map[string]struct{}{}}

	raw, err := os.ReadFile(path)
	if err != nil {
		return log
	}
	var file shaLogFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return log
	}
	for _, sha := range file.ProcessedSHAs {
		log.append(sha)
	}
	return log
}

// Contains reports whether the SHA was already processed.
func (l *ShaLog) Contains(sha string) bool {
	_, ok := l.seen[sha]
	return ok
}

// Add records a processed SHA, evicting the oldest entry beyond the cap.
func (l *ShaLog) Add(sha string) {
	if l.Contains(sha) {
		return
	}
	l.append(sha)
}

// SHAs returns the retained entries in original relative order.
func (l *ShaLog) SHAs() []string {
	out := make([]string, len(l.shas))
	copy(out, l.shas)
	return out
}

// Save persists the log.
func (l *ShaLog) Save() error {
	raw, err := json.MarshalIndent(shaLogFile{ProcessedSHAs: l.shas}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sha log: %w", err)
	}
	if err := os.WriteFile(l.path, raw, 0o644); err != nil {
		return fmt.Errorf("write sha log: %w", err)
	}
	return nil
}

func (l *ShaLog) append(sha string) {
	l.shas = append(l.shas, sha)
	l.seen[sha] = struct{}{}
	for len(l.shas) > l.cap {
		delete(l.seen, l.shas[0])
		l.shas = l.shas[1:]
	}
}
