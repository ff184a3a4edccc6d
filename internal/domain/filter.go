package domain

import (
	"math/rand"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// SortMode selects the ordering applied after filtering.
type SortMode string

// Sort modes.
const (
	SortPopularity  SortMode = "popularity"
	SortRating      SortMode = "rating"
	SortAlphabet    SortMode = "alphabet"
	SortReleaseDate SortMode = "release_date"
	SortRandom      SortMode = "random"
)

// ParseSortMode converts a string into a SortMode. Empty input means no sort.
func ParseSortMode(s string) (SortMode, bool) {
	switch SortMode(s) {
	case SortPopularity, SortRating, SortAlphabet, SortReleaseDate, SortRandom, "":
		return SortMode(s), true
	default:
		return "", false
	}
}

// FilterConfig is a transient, user-held view configuration. It is never
// persisted.
type FilterConfig struct {
	// Genres keeps titles carrying at least one of these genres.
	// Matching is case-insensitive. Empty means no genre filter.
	Genres []string
	// MinRating keeps titles whose integer-truncated average rating is at
	// least this value. Unrated titles are dropped when set.
	MinRating *int
	// YearFrom and YearTo bound the release year inclusively. A title
	// without a year passes only the unset bounds.
	YearFrom *int
	YearTo   *int
	// SortBy orders the result. Empty leaves the input order.
	SortBy SortMode
	// Rand seeds the random sort; nil falls back to the global source.
	Rand *rand.Rand
}

var genreFolder = cases.Fold()

// ApplyFilters runs the filter stages in fixed order (genre, rating,
// year, sort) and returns a new slice. The input is never mutated.
// All sorts except random are stable.
func ApplyFilters(titles []Title, cfg FilterConfig) []Title {
	out := make([]Title, 0, len(titles))
	for _, t := range titles {
		if matchesGenre(t, cfg.Genres) && matchesRating(t, cfg.MinRating) && matchesYears(t, cfg.YearFrom, cfg.YearTo) {
			out = append(out, t)
		}
	}
	sortTitles(out, cfg.SortBy, cfg.Rand)
	return out
}

func matchesGenre(t Title, genres []string) bool {
	if len(genres) == 0 {
		return true
	}
	wanted := make(map[string]bool, len(genres))
	for _, g := range genres {
		wanted[genreFolder.String(g)] = true
	}
	for _, g := range t.Genres {
		if wanted[genreFolder.String(g)] {
			return true
		}
	}
	return false
}

func matchesRating(t Title, min *int) bool {
	if min == nil {
		return true
	}
	if t.AverageRating == nil {
		return false
	}
	return int(*t.AverageRating) >= *min
}

func matchesYears(t Title, from, to *int) bool {
	year := t.StartYear
	if from != nil && (year == nil || *year < *from) {
		return false
	}
	if to != nil && (year == nil || *year > *to) {
		return false
	}
	return true
}

func sortTitles(titles []Title, mode SortMode, rng *rand.Rand) {
	switch mode {
	case SortPopularity:
		sort.SliceStable(titles, func(i, j int) bool {
			return votesOrZero(titles[i]) > votesOrZero(titles[j])
		})
	case SortRating:
		sort.SliceStable(titles, func(i, j int) bool {
			return ratingOrZero(titles[i]) > ratingOrZero(titles[j])
		})
	case SortAlphabet:
		sort.SliceStable(titles, func(i, j int) bool {
			return strings.Compare(titles[i].PrimaryTitle, titles[j].PrimaryTitle) < 0
		})
	case SortReleaseDate:
		sort.SliceStable(titles, func(i, j int) bool {
			return yearOrZero(titles[i]) > yearOrZero(titles[j])
		})
	case SortRandom:
		shuffle := rand.Shuffle
		if rng != nil {
			shuffle = rng.Shuffle
		}
		shuffle(len(titles), func(i, j int) {
			titles[i], titles[j] = titles[j], titles[i]
		})
	}
}

func votesOrZero(t Title) int {
	if t.NumVotes == nil {
		return 0
	}
	return *t.NumVotes
}

func ratingOrZero(t Title) float64 {
	if t.AverageRating == nil {
		return 0
	}
	return *t.AverageRating
}

func yearOrZero(t Title) int {
	if t.StartYear == nil {
		return 0
	}
	return *t.StartYear
}
