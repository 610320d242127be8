/*
Package cohesion discovers words in raw Korean text by cohesion scoring.

Training is a two phase batch over a corpus. Counting segments every document
into chunks, expands each Hangul chunk into its prefix candidates and counts
them. Selection scores every counted candidate and, for each chunk, walks its
candidates from shortest to longest keeping the best score seen so far. The
walk stops at the first candidate scoring strictly below the running best; the
last kept candidate is the chunk's word.

	m := cohesion.New(cohesion.DefaultOptions())
	vocab, err := m.Train(ctx, []string{"안녕하세요!", "안녕"})

Counting runs documents in parallel and merges into sharded counters.
Selection only starts once every document has been counted, since scores
depend on corpus-wide counts. Both phases stop early when ctx is cancelled.
*/
package cohesion

import (
	"context"
	"runtime"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/bastiangx/kokoa/pkg/candidate"
	"github.com/bastiangx/kokoa/pkg/chunk"
)

// Options tune a training run.
type Options struct {
	// Workers bounds parallelism in both phases. Zero means GOMAXPROCS.
	Workers int
	// Shards is the number of counter shards used while counting.
	Shards int
	// MinFrequency drops selected words observed fewer times than this.
	MinFrequency int
	// MinSyllables is the shortest word the vocabulary accepts.
	MinSyllables int
}

// DefaultOptions returns options that apply no extra filtering.
func DefaultOptions() Options {
	return Options{
		Workers:      0,
		Shards:       32,
		MinFrequency: 1,
		MinSyllables: 2,
	}
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Model holds the state of one training run.
type Model struct {
	opts   Options
	table  *FrequencyTable
	scores Scores
	chunks []string
}

// New returns an untrained model.
func New(opts Options) *Model {
	if opts.MinSyllables < 2 {
		opts.MinSyllables = 2
	}
	return &Model{
		opts:   opts,
		table:  NewFrequencyTable(),
		scores: make(Scores),
	}
}

// Table returns the frequency table of the last run.
func (m *Model) Table() *FrequencyTable {
	return m.table
}

// Scores returns the candidate scores of the last run.
func (m *Model) Scores() Scores {
	return m.scores
}

// Chunks returns the distinct Hangul chunks seen while counting, in first-seen order.
func (m *Model) Chunks() []string {
	return m.chunks
}

// Train runs both phases over docs and returns the discovered vocabulary.
// Previous state of m is discarded.
func (m *Model) Train(ctx context.Context, docs []string) (*Vocabulary, error) {
	if err := m.Count(ctx, docs); err != nil {
		return nil, err
	}
	if err := m.Update(); err != nil {
		return nil, err
	}
	vocab, err := m.Select(ctx, m.chunks)
	if err != nil {
		return nil, err
	}
	log.Debugf("Trained on %d documents: %d candidates, %d chunks, %d words",
		len(docs), m.table.Len(), len(m.chunks), vocab.Len())
	return vocab, nil
}

// Count builds a fresh frequency table from docs. On error the previous
// state of m is kept.
func (m *Model) Count(ctx context.Context, docs []string) error {
	counter := newShardedCounter(m.opts.Shards)
	perDoc := make([][]string, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.workers())
	for i, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			local := make(map[string]int)
			for c := range chunk.Of(doc, chunk.Hangul) {
				perDoc[i] = append(perDoc[i], c.Text)
				for cand := range candidate.Expand(c.Text) {
					local[cand.Text]++
				}
			}
			counter.merge(local)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	m.table = counter.table()
	m.scores = make(Scores)
	m.chunks = distinct(perDoc)
	if len(m.chunks) == 0 {
		log.Debug("Corpus holds no Hangul chunks")
	}
	return nil
}

// Update recomputes scores from the current frequency table.
func (m *Model) Update() error {
	scores, err := ScoreTable(m.table)
	if err != nil {
		return err
	}
	m.scores = scores
	return nil
}

// Best scans the candidates of one Hangul chunk and returns the selected one.
// It reports false when the chunk yields no scored candidate.
func (m *Model) Best(text string) (Entry, bool) {
	var best Entry
	found := false
	bestScore := 0.0
	for c := range candidate.Expand(text) {
		s, ok := m.scores.Of(c.Text)
		if !ok || s < bestScore {
			break
		}
		best = Entry{Word: c.Text, Tag: Unassigned, Score: s, Count: m.table.Count(c.Text)}
		bestScore = s
		found = true
	}
	return best, found
}

// Select runs the selection scan over chunks and collects accepted words.
func (m *Model) Select(ctx context.Context, chunks []string) (*Vocabulary, error) {
	vocab := NewVocabulary()
	workers := m.opts.workers()
	if len(chunks) == 0 {
		return vocab, ctx.Err()
	}
	batch := (len(chunks) + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(chunks); start += batch {
		part := chunks[start:min(start+batch, len(chunks))]
		g.Go(func() error {
			for _, text := range part {
				if err := ctx.Err(); err != nil {
					return err
				}
				if e, ok := m.Best(text); ok && m.accept(e) {
					vocab.Add(e)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vocab, nil
}

func (m *Model) accept(e Entry) bool {
	return utf8.RuneCountInString(e.Word) >= m.opts.MinSyllables && e.Count >= m.opts.MinFrequency
}

func distinct(perDoc [][]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, chunks := range perDoc {
		for _, c := range chunks {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}
