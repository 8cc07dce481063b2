package domain

import "time"

// Video is one archived broadcast as reported by the catalog.
// Only the ID is ever persisted; everything else is for logs and the manifest.
type Video struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	URL       string    `json:"url"`
}

// SeenSet is the in-memory image of the dedup ledger.
type SeenSet map[string]struct{}

// NewSeenSet returns an empty set.
func NewSeenSet() SeenSet {
	return make(SeenSet)
}

// Contains reports whether the ID has already been handled.
func (s SeenSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Add marks an ID as handled.
func (s SeenSet) Add(id string) {
	s[id] = struct{}{}
}

// Len returns the number of handled IDs.
func (s SeenSet) Len() int {
	return len(s)
}

// FilterUnseen returns the videos whose IDs are not in the handled set,
// preserving input order. A repeated ID within the same listing is kept once.
func FilterUnseen(videos []Video, seen SeenSet) []Video {
	out := make([]Video, 0, len(videos))
	picked := make(map[string]struct{}, len(videos))
	for _, v := range videos {
		if seen.Contains(v.ID) {
			continue
		}
		if _, dup := picked[v.ID]; dup {
			continue
		}
		picked[v.ID] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Stages of per-video processing, recorded on failed outcomes.
const (
	StageAcquire = "acquire"
	StageExtract = "extract"
)

// ItemOutcome holds the result of processing a single video.
type ItemOutcome struct {
	VideoID     string    `json:"video_id"`
	Title       string    `json:"title"`
	Success     bool      `json:"success"`
	Stage       string    `json:"stage,omitempty"`
	Error       string    `json:"error,omitempty"`
	FrameDir    string    `json:"frame_dir,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

// RunSummary describes one complete poll cycle.
type RunSummary struct {
	RunID      string        `json:"run_id"`
	Channel    string        `json:"channel"`
	ChannelID  string        `json:"channel_id,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Listed     int           `json:"listed"`
	New        int           `json:"new"`
	Succeeded  int           `json:"succeeded"`
	Failed     int           `json:"failed"`
	Items      []ItemOutcome `json:"items,omitempty"`
}
