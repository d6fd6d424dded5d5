package store

import (
	"context"
	"errors"
	"sort"

	"github.com/sujalbistaa/moodcanvas/internal/models"
)

// ErrNotFound is returned by Vote when no submission has the requested id.
var ErrNotFound = errors.New("submission not found")

// Store holds every submission received during the process lifetime.
// Implementations must serialize Append and Vote.
type Store interface {
	// Append adds s after all existing submissions and returns it as stored.
	// IDs are kept verbatim; duplicates are allowed.
	Append(ctx context.Context, s models.Submission) (models.Submission, error)
	// ListAll returns all submissions in insertion order.
	ListAll(ctx context.Context) ([]models.Submission, error)
	// Vote increments the votes of the first submission with the given id.
	Vote(ctx context.Context, id int64) (models.Submission, error)
}

// Ranked returns a copy of subs ordered by votes, highest first. Ties keep
// their insertion order.
func Ranked(subs []models.Submission) []models.Submission {
	out := make([]models.Submission, len(subs))
	copy(out, subs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Votes > out[j].Votes
	})
	return out
}

// Summarize counts submissions and votes across subs.
func Summarize(subs []models.Submission) models.Stats {
	var st models.Stats
	st.TotalSubmissions = len(subs)
	for _, s := range subs {
		st.TotalVotes += s.Votes
		if s.Votes > 0 {
			st.VotedSubmissions++
		}
	}
	return st
}
