package services

import (
	"sort"
	"strings"

	"geocheckin/dto"
	"geocheckin/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

const (
	nameSimilarityThreshold = 0.6
	wordSimilarityThreshold = 0.75
)

// normalizeInput lowercases and strips accents so "Hà Nội" matches "ha noi".
func normalizeInput(input string) string {
	return strings.Join(strings.Fields(strings.ToLower(unidecode.Unidecode(input))), " ")
}

func calculateSimilarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	return 1 - float64(distance)/float64(maxLen)
}

func siteScore(query, name string) float64 {
	if name == query {
		return 3
	}
	if strings.HasPrefix(name, query) {
		return 2.5
	}
	if strings.Contains(name, query) {
		return 2
	}

	best := calculateSimilarity(query, name)
	if best < nameSimilarityThreshold {
		best = 0
	}
	if !strings.Contains(query, " ") {
		for _, word := range strings.Fields(name) {
			if s := calculateSimilarity(query, word); s >= wordSimilarityThreshold && s > best {
				best = s
			}
		}
	}
	return best
}

// RankSites filters sites by name and orders them best match first. When
// nothing matches, DidYouMean carries the closest site name.
func RankSites(query string, sites []models.Site) dto.SiteSearchResult {
	q := normalizeInput(query)
	if q == "" {
		out := append([]models.Site(nil), sites...)
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return dto.SiteSearchResult{Sites: out}
	}

	type scored struct {
		site  models.Site
		score float64
	}
	var hits []scored
	for _, site := range sites {
		if s := siteScore(q, normalizeInput(site.Name)); s > 0 {
			hits = append(hits, scored{site: site, score: s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].site.Name < hits[j].site.Name
	})

	result := dto.SiteSearchResult{Sites: make([]models.Site, 0, len(hits))}
	for _, h := range hits {
		result.Sites = append(result.Sites, h.site)
	}
	if len(result.Sites) == 0 {
		result.DidYouMean = suggestSiteName(q, sites)
	}
	return result
}

func suggestSiteName(query string, sites []models.Site) string {
	if len(sites) == 0 {
		return ""
	}
	original := make(map[string]string, len(sites))
	keywords := make([]string, 0, len(sites))
	for _, site := range sites {
		n := normalizeInput(site.Name)
		if n == "" {
			continue
		}
		if _, ok := original[n]; !ok {
			original[n] = site.Name
			keywords = append(keywords, n)
		}
	}
	if len(keywords) == 0 {
		return ""
	}
	cm := closestmatch.New(keywords, []int{2, 3})
	return original[cm.Closest(query)]
}
