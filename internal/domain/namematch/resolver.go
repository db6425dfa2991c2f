package namematch

// DefaultThreshold is the minimum accepted score.
const DefaultThreshold = 90

// Match is the best reference for one external name.
type Match struct {
	Query string `json:"query"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Result is the outcome of resolving a list of external names.
type Result struct {
	// Names holds each accepted reference name once, in first-accepted order.
	Names    []string
	Accepted []Match
	Rejected []Match
}

// Resolver maps external display names onto canonical reference names.
type Resolver struct {
	Threshold int
}

func NewResolver(threshold int) Resolver {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return Resolver{Threshold: threshold}
}

type reference struct {
	name      string
	processed string
}

func prepare(refs []string) []reference {
	out := make([]reference, 0, len(refs))
	for _, name := range refs {
		out = append(out, reference{name: name, processed: Process(name)})
	}
	return out
}

// Best returns the highest scoring reference for query. Ties keep the
// earliest reference. ok is false when refs is empty.
func Best(query string, refs []string) (Match, bool) {
	return best(Process(query), query, prepare(refs))
}

func best(processed, query string, refs []reference) (Match, bool) {
	if len(refs) == 0 {
		return Match{Query: query}, false
	}
	out := Match{Query: query, Score: -1}
	for _, ref := range refs {
		score := WRatio(processed, ref.processed)
		if score > out.Score {
			out.Name = ref.name
			out.Score = score
			if score == 100 {
				break
			}
		}
	}
	return out, true
}

// Resolve matches every query against refs. Queries whose best score falls
// below the threshold are rejected rather than failing the run.
func (r Resolver) Resolve(queries, refs []string) Result {
	threshold := r.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	prepared := prepare(refs)

	var result Result
	seen := make(map[string]struct{})
	for _, q := range queries {
		m, ok := best(Process(q), q, prepared)
		if !ok || m.Score < threshold {
			if m.Score < 0 {
				m.Score = 0
			}
			result.Rejected = append(result.Rejected, m)
			continue
		}
		result.Accepted = append(result.Accepted, m)
		if _, dup := seen[m.Name]; dup {
			continue
		}
		seen[m.Name] = struct{}{}
		result.Names = append(result.Names, m.Name)
	}
	return result
}
