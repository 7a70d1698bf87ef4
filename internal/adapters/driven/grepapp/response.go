package grepapp

import "github.com/custodia-labs/codegrep/internal/core/domain"

// searchResponse mirrors the JSON body of /api/search.
type searchResponse struct {
	Time    int64       `json:"time"`
	Partial bool        `json:"partial"`
	Facets  wireFacets  `json:"facets"`
	Hits    wireHitList `json:"hits"`
}

type wireFacets struct {
	Count int         `json:"count"`
	Lang  wireBuckets `json:"lang"`
	Repo  wireBuckets `json:"repo"`
	Path  wireBuckets `json:"path"`
}

type wireBuckets struct {
	Buckets []wireBucket `json:"buckets"`
}

type wireBucket struct {
	Val   string `json:"val"`
	Count int    `json:"count"`
}

type wireHitList struct {
	Total int       `json:"total"`
	Hits  []wireHit `json:"hits"`
}

type wireHit struct {
	Repo    wireRaw `json:"repo"`
	Path    wireRaw `json:"path"`
	Content struct {
		Snippet string `json:"snippet"`
	} `json:"content"`
}

// wireRaw is the {"raw": "..."} wrapper used for string fields.
type wireRaw struct {
	Raw string `json:"raw"`
}

func (r *searchResponse) toDomain() *domain.SearchResult {
	hits := make([]domain.Hit, len(r.Hits.Hits))
	for i, h := range r.Hits.Hits {
		hits[i] = domain.Hit{
			Repo:    h.Repo.Raw,
			Path:    h.Path.Raw,
			Snippet: h.Content.Snippet,
		}
	}
	return &domain.SearchResult{
		Count:        r.Facets.Count,
		Languages:    r.Facets.Lang.toDomain(),
		Repositories: r.Facets.Repo.toDomain(),
		Paths:        r.Facets.Path.toDomain(),
		Hits:         hits,
		Total:        r.Hits.Total,
		Partial:      r.Partial,
		TimeMS:       r.Time,
	}
}

func (b wireBuckets) toDomain() []domain.Bucket {
	out := make([]domain.Bucket, len(b.Buckets))
	for i, w := range b.Buckets {
		out[i] = domain.Bucket{Value: w.Val, Count: w.Count}
	}
	return out
}
