package enrich

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/discochess/gsea/internal/chunk"
	"github.com/discochess/gsea/internal/permute"
	"github.com/discochess/gsea/internal/rank"
)

// DefaultChunkSize is the number of phenotype replicates per work unit.
const DefaultChunkSize = 64

// Positions maps a gene's expression row index to its position in a ranking.
type Positions []int

// NewPositions inverts a ranking order.
func NewPositions(order []int) Positions {
	p := make(Positions, len(order))
	for i, g := range order {
		p[g] = i
	}
	return p
}

// Hits writes the ascending ranked positions of members to dst.
func (p Positions) Hits(members []int, dst []int) []int {
	dst = dst[:0]
	for _, g := range members {
		dst = append(dst, p[g])
	}
	sort.Ints(dst)
	return dst
}

// Scores is the outcome of scoring G gene sets over K replicates.
type Scores struct {
	// Observed holds the score of each set against the true ranking.
	Observed []float64
	// Null is the G×K matrix of replicate scores, nil when K is 0.
	Null *mat.Dense
	// Hits holds each set's ascending positions in the true ranking.
	Hits [][]int
	// RES holds each set's running sum over the true ranking.
	RES [][]float64
	// Status flags degenerate sets.
	Status []Status
}

// NullRow returns the replicate scores of set i, or nil without replicates.
func (s *Scores) NullRow(i int) []float64 {
	if s.Null == nil {
		return nil
	}
	return s.Null.RawRowView(i)
}

func newScores(g, k int) *Scores {
	s := &Scores{
		Observed: make([]float64, g),
		Hits:     make([][]int, g),
		RES:      make([][]float64, g),
		Status:   make([]Status, g),
	}
	if g > 0 && k > 0 {
		s.Null = mat.NewDense(g, k, nil)
	}
	return s
}

// observe scores every set against the true ranking. Observed comes from
// Score, the same routine that scores replicates, so a replicate ranked
// like the truth reproduces it exactly.
func (s *Scores) observe(values []float64, hits [][]int, p Params) {
	for i, h := range hits {
		s.Hits[i] = h
		s.RES[i], _, s.Status[i] = Curve(values, h, p)
		s.Observed[i], _ = Score(values, h, p)
	}
}

// Batch schedules scoring work across goroutines. Each unit draws from its
// own derived random stream and writes a disjoint part of the null matrix,
// so results depend on Seed only.
type Batch struct {
	// Seed is the base seed units derive their streams from.
	Seed uint64
	// Workers bounds concurrent units. Zero means GOMAXPROCS.
	Workers int
	// ChunkSize is the number of phenotype replicates per unit. Zero means
	// DefaultChunkSize.
	ChunkSize int
	// Progress, if set, is called after each unit with the units completed
	// and the unit total. Calls are serialized.
	Progress func(done, total int)
}

func (b Batch) workers() int {
	if b.Workers > 0 {
		return b.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (b Batch) chunkSize() int {
	if b.ChunkSize > 0 {
		return b.ChunkSize
	}
	return DefaultChunkSize
}

// run executes fn for units [0, total) and waits for all of them.
func (b Batch) run(ctx context.Context, total int, fn func(ctx context.Context, unit int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers())

	var mu sync.Mutex
	done := 0
	for u := 0; u < total; u++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := fn(gctx, u); err != nil {
				return err
			}
			if b.Progress != nil {
				mu.Lock()
				done++
				b.Progress(done, total)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Tag scores sets against a fixed ranking and builds each set's null by
// drawing k random tag placements of the same size. values is the ranked
// metric and hits[i] the ascending positions of set i in it. Sets are the
// work units.
func (b Batch) Tag(ctx context.Context, values []float64, hits [][]int, k int, p Params) (*Scores, error) {
	s := newScores(len(hits), k)
	s.observe(values, hits, p)
	if s.Null == nil {
		return s, nil
	}

	err := b.run(ctx, len(hits), func(ctx context.Context, i int) error {
		row := s.Null.RawRowView(i)
		m := len(hits[i])
		if m == 0 {
			return nil
		}
		tags := permute.GeneSetTags(b.Seed, i, len(values))
		draw := make([]int, 0, m)
		for r := range row {
			if r%256 == 0 && ctx.Err() != nil {
				return ctx.Err()
			}
			draw = tags.Draw(m, draw)
			row[r], _ = Score(values, draw, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Phenotype scores sets against the ranking of the true labeling and builds
// the null by re-ranking under k shuffled labelings. members[i] holds the
// expression row indices of set i. Chunks of replicates are the work units.
func (b Batch) Phenotype(ctx context.Context, ranker *rank.Cache, truth rank.Labeling, members [][]int, k int, p Params) (*Scores, rank.Ranking, error) {
	observed := ranker.Rank(truth)
	pos := NewPositions(observed.Order)
	hits := make([][]int, len(members))
	for i, set := range members {
		hits[i] = pos.Hits(set, make([]int, 0, len(set)))
	}

	s := newScores(len(members), k)
	s.observe(observed.Values, hits, p)
	if s.Null == nil {
		return s, observed, nil
	}

	chunks := chunk.Split(k, b.chunkSize())
	err := b.run(ctx, len(chunks), func(ctx context.Context, u int) error {
		c := chunks[u]
		var draw []int
		for q, r := range ranker.Tensor(ctx, permute.PhenotypeChunk(truth, b.Seed, c)) {
			if err := ctx.Err(); err != nil {
				return err
			}
			pos := NewPositions(r.Order)
			for i, set := range members {
				draw = pos.Hits(set, draw)
				v, _ := Score(r.Values, draw, p)
				s.Null.Set(i, c.Start+q, v)
			}
		}
		return nil
	})
	if err != nil {
		return nil, rank.Ranking{}, err
	}
	return s, observed, nil
}
