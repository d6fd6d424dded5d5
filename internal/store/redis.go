package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/sujalbistaa/moodcanvas/internal/models"
)

const defaultRedisPrefix = "moodcanvas"

// voteScript walks the sequence list in order and bumps the first record
// whose id field equals ARGV[1]. Ids are compared as strings so no number
// ever passes through Lua. Returns the record as HGETALL pairs.
var voteScript = redis.NewScript(`
local seqs = redis.call('LRANGE', KEYS[1], 0, -1)
for _, seq in ipairs(seqs) do
  local key = ARGV[2] .. seq
  if redis.call('HGET', key, 'id') == ARGV[1] then
    redis.call('HINCRBY', key, 'votes', 1)
    return redis.call('HGETALL', key)
  end
end
return false
`)

// RedisStore keeps each submission in its own hash. A list of sequence
// numbers records the insertion order.
type RedisStore struct {
	client       *redis.Client
	listKey      string
	seqKey       string
	recordPrefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{
		client:       client,
		listKey:      prefix + ":submissions",
		seqKey:       prefix + ":submissions:seq",
		recordPrefix: prefix + ":submission:",
	}
}

func (r *RedisStore) recordKey(seq string) string {
	return r.recordPrefix + seq
}

func (r *RedisStore) Append(ctx context.Context, s models.Submission) (models.Submission, error) {
	seq, err := r.client.Incr(ctx, r.seqKey).Result()
	if err != nil {
		return models.Submission{}, fmt.Errorf("allocate submission slot: %w", err)
	}
	seqStr := strconv.FormatInt(seq, 10)

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.recordKey(seqStr), map[string]interface{}{
			"id":           strconv.FormatInt(s.ID, 10),
			"type":         string(s.Type),
			"user_content": s.UserContent,
			"ai_response":  s.AIResponse,
			"votes":        strconv.Itoa(s.Votes),
		})
		pipe.RPush(ctx, r.listKey, seqStr)
		return nil
	})
	if err != nil {
		return models.Submission{}, fmt.Errorf("append submission: %w", err)
	}
	return s, nil
}

func (r *RedisStore) ListAll(ctx context.Context) ([]models.Submission, error) {
	seqs, err := r.client.LRange(ctx, r.listKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	out := make([]models.Submission, 0, len(seqs))
	if len(seqs) == 0 {
		return out, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(seqs))
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, seq := range seqs {
			cmds[i] = pipe.HGetAll(ctx, r.recordKey(seq))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	for _, cmd := range cmds {
		s, err := submissionFromHash(cmd.Val())
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *RedisStore) Vote(ctx context.Context, id int64) (models.Submission, error) {
	pairs, err := voteScript.Run(ctx, r.client,
		[]string{r.listKey},
		strconv.FormatInt(id, 10), r.recordPrefix,
	).StringSlice()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Submission{}, ErrNotFound
		}
		return models.Submission{}, fmt.Errorf("vote on submission %d: %w", id, err)
	}

	fields := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		fields[pairs[i]] = pairs[i+1]
	}
	return submissionFromHash(fields)
}

func submissionFromHash(fields map[string]string) (models.Submission, error) {
	id, err := strconv.ParseInt(fields["id"], 10, 64)
	if err != nil {
		return models.Submission{}, fmt.Errorf("decode submission id: %w", err)
	}
	votes, err := strconv.Atoi(fields["votes"])
	if err != nil {
		return models.Submission{}, fmt.Errorf("decode submission votes: %w", err)
	}
	return models.Submission{
		ID:          id,
		Type:        models.SubmissionType(fields["type"]),
		UserContent: fields["user_content"],
		AIResponse:  fields["ai_response"],
		Votes:       votes,
	}, nil
}
