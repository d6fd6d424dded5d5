package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujalbistaa/moodcanvas/internal/models"
)

func textSubmission(id int64, content string) models.Submission {
	return models.Submission{
		ID:          id,
		Type:        models.TypeText,
		UserContent: content,
		AIResponse:  "AI says: 'hello'",
	}
}

// testStoreContract runs the behaviour every Store implementation shares.
func testStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("EmptyListIsNotNil", func(t *testing.T) {
		s := newStore(t)
		subs, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, subs)
		assert.Empty(t, subs)
	})

	t.Run("AppendKeepsInsertionOrder", func(t *testing.T) {
		s := newStore(t)
		for i, content := range []string{"first", "second", "third"} {
			saved, err := s.Append(ctx, textSubmission(int64(10-i), content))
			require.NoError(t, err)
			assert.Equal(t, content, saved.UserContent)

			subs, err := s.ListAll(ctx)
			require.NoError(t, err)
			require.Len(t, subs, i+1)
			assert.Equal(t, saved, subs[len(subs)-1])
		}

		subs, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{10, 9, 8}, ids(subs))

		again, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, subs, again)
	})

	t.Run("AppendReturnsSubmissionUnchanged", func(t *testing.T) {
		s := newStore(t)
		in := models.Submission{
			ID:          7,
			Type:        models.TypeDrawing,
			UserContent: "data:image/png;base64,iVBORw0KGgo=",
			AIResponse:  "AI guesses: 'This looks happy and creative!'",
			Votes:       4,
		}
		saved, err := s.Append(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, in, saved)
	})

	t.Run("AppendStoresIDsVerbatim", func(t *testing.T) {
		s := newStore(t)
		in := []models.Submission{
			{ID: 0, Type: models.TypeText, UserContent: "zero", AIResponse: "x"},
			{ID: -4, Type: models.TypeText, UserContent: "negative", AIResponse: "y"},
			{ID: 0, Type: models.TypeDrawing, UserContent: "", AIResponse: ""},
		}
		for _, sub := range in {
			saved, err := s.Append(ctx, sub)
			require.NoError(t, err)
			assert.Equal(t, sub, saved)
		}

		subs, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, in, subs)

		voted, err := s.Vote(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, "zero", voted.UserContent)
		assert.Equal(t, 1, voted.Votes)
	})

	t.Run("LargeIDsKeepFullPrecision", func(t *testing.T) {
		s := newStore(t)
		// Adjacent ids above 2^53 collapse when handled as doubles.
		const base int64 = 1 << 53
		in := []models.Submission{
			textSubmission(base, "exact"),
			textSubmission(base+1, "next"),
			textSubmission(123456789012345678, "wide"),
		}
		for _, sub := range in {
			_, err := s.Append(ctx, sub)
			require.NoError(t, err)
		}

		voted, err := s.Vote(ctx, base+1)
		require.NoError(t, err)
		assert.Equal(t, base+1, voted.ID)
		assert.Equal(t, "next", voted.UserContent)

		subs, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{base, base + 1, 123456789012345678}, ids(subs))
		assert.Equal(t, []int{0, 1, 0}, []int{subs[0].Votes, subs[1].Votes, subs[2].Votes})
	})

	t.Run("VoteIncrementsOnlyVotes", func(t *testing.T) {
		s := newStore(t)
		orig, err := s.Append(ctx, textSubmission(1, "hi"))
		require.NoError(t, err)

		voted, err := s.Vote(ctx, 1)
		require.NoError(t, err)

		want := orig
		want.Votes = 1
		assert.Equal(t, want, voted)

		subs, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.Submission{want}, subs)
	})

	t.Run("VoteUnknownIDIsNotFound", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Append(ctx, textSubmission(1, "hi"))
		require.NoError(t, err)
		before, err := s.ListAll(ctx)
		require.NoError(t, err)

		_, err = s.Vote(ctx, 2)
		assert.ErrorIs(t, err, ErrNotFound)

		after, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("DuplicateIDsVoteFirstMatch", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Append(ctx, textSubmission(5, "older"))
		require.NoError(t, err)
		_, err = s.Append(ctx, textSubmission(5, "newer"))
		require.NoError(t, err)

		voted, err := s.Vote(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, "older", voted.UserContent)

		subs, err := s.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, subs, 2)
		assert.Equal(t, 1, subs[0].Votes)
		assert.Equal(t, 0, subs[1].Votes)
	})

	t.Run("ConcurrentVotesAreNotLost", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Append(ctx, textSubmission(1, "popular"))
		require.NoError(t, err)

		const voters = 50
		var wg sync.WaitGroup
		for i := 0; i < voters; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.Vote(ctx, 1)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		subs, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, voters, subs[0].Votes)
	})
}

func ids(subs []models.Submission) []int64 {
	out := make([]int64, len(subs))
	for i, s := range subs {
		out[i] = s.ID
	}
	return out
}

func TestRanked(t *testing.T) {
	subs := []models.Submission{
		{ID: 1, Votes: 2},
		{ID: 2, Votes: 5},
		{ID: 3, Votes: 2},
		{ID: 4, Votes: 0},
	}
	ranked := Ranked(subs)

	assert.Equal(t, []int64{2, 1, 3, 4}, ids(ranked))
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(subs), "input must not be reordered")
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		subs []models.Submission
		want models.Stats
	}{
		{"Empty", nil, models.Stats{}},
		{"Mixed", []models.Submission{{Votes: 3}, {Votes: 0}, {Votes: 1}}, models.Stats{
			TotalSubmissions: 3,
			TotalVotes:       4,
			VotedSubmissions: 2,
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Summarize(tc.subs))
		})
	}
}
