package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func video(id string) Video {
	return Video{ID: id, Title: "VOD " + id, URL: "https://www.twitch.tv/videos/" + id}
}

func TestFilterUnseen(t *testing.T) {
	cases := []struct {
		name   string
		videos []Video
		seen   []string
		want   []Video
	}{
		{
			name:   "all unseen",
			videos: []Video{video("1"), video("2"), video("3")},
			want:   []Video{video("1"), video("2"), video("3")},
		},
		{
			name:   "some seen",
			videos: []Video{video("1"), video("2"), video("3")},
			seen:   []string{"2"},
			want:   []Video{video("1"), video("3")},
		},
		{
			name:   "all seen",
			videos: []Video{video("1"), video("2")},
			seen:   []string{"1", "2"},
			want:   []Video{},
		},
		{
			name: "empty listing",
			seen: []string{"1"},
			want: []Video{},
		},
		{
			name:   "order preserved",
			videos: []Video{video("9"), video("4"), video("7")},
			seen:   []string{"4"},
			want:   []Video{video("9"), video("7")},
		},
		{
			name:   "duplicate in listing kept once",
			videos: []Video{video("1"), video("2"), video("1")},
			want:   []Video{video("1"), video("2")},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seen := NewSeenSet()
			for _, id := range tc.seen {
				seen.Add(id)
			}

			got := FilterUnseen(tc.videos, seen)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("FilterUnseen mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSeenSet(t *testing.T) {
	s := NewSeenSet()
	if s.Contains("123") {
		t.Error("empty set should not contain anything")
	}

	s.Add("123")
	s.Add("123")
	s.Add("456")

	if !s.Contains("123") || !s.Contains("456") {
		t.Error("expected added ids to be contained")
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 ids, got %d", s.Len())
	}
}
