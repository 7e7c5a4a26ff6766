package embeddings

import (
	"context"
	"errors"
	"math"
)

// Vector is a fixed-dimension embedding of one text string.
type Vector []float32

// ErrUnavailable marks failures of the embedding provider itself
// (initialization or encode calls). Callers must treat it as a
// service-level fault, never fold it into a neutral score.
var ErrUnavailable = errors.New("embedding provider unavailable")

// Embedder turns text into vectors. Implementations are read-only after
// construction and safe for concurrent use.
type Embedder interface {
	// Embed encodes a single text. Empty input returns a valid vector.
	Embed(ctx context.Context, text string) (Vector, error)

	// EmbedBatch encodes texts and returns one vector per input, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([]Vector, error)
}

// CosineSimilarity returns dot(a,b)/(|a||b|) in [-1,1].
// A zero-norm vector (empty or degenerate text) or mismatched dimensions
// yield 0 rather than a division fault.
func CosineSimilarity(a, b Vector) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

// BatchSimilarity returns the cosine similarity of query against each row,
// normalizing the query once instead of once per pair. Rows with zero norm
// or a mismatched dimension score 0.
func BatchSimilarity(query Vector, rows []Vector) []float32 {
	scores := make([]float32, len(rows))
	var qn float64
	for _, v := range query {
		qn += float64(v) * float64(v)
	}
	if qn == 0 {
		return scores
	}
	qn = math.Sqrt(qn)

	for i, row := range rows {
		if len(row) != len(query) {
			continue
		}
		var dot, rn float64
		for j := range row {
			dot += float64(query[j]) * float64(row[j])
			rn += float64(row[j]) * float64(row[j])
		}
		if rn == 0 {
			continue
		}
		scores[i] = float32(dot / (qn * math.Sqrt(rn)))
	}
	return scores
}
