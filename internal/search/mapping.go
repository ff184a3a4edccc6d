package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/vitalii-holoienko/MediaBase/internal/domain"
)

// titleDocument is the flattened form of a title fed to the index.
type titleDocument struct {
	PrimaryTitle string   `json:"primaryTitle"`
	Genres       []string `json:"genres,omitempty"`
	StartYear    int      `json:"startYear,omitempty"`
}

func newTitleDocument(t domain.Title) titleDocument {
	doc := titleDocument{
		PrimaryTitle: t.PrimaryTitle,
		Genres:       t.Genres,
	}
	if t.StartYear != nil {
		doc.StartYear = *t.StartYear
	}
	return doc
}

// buildIndexMapping creates the Bleve mapping for title documents:
// full-text search on the title with English stemming, exact keyword
// matching on genres, and numeric range queries on the release year.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = en.AnalyzerName
	titleFieldMapping.Store = true
	titleFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("primaryTitle", titleFieldMapping)

	genreFieldMapping := bleve.NewTextFieldMapping()
	genreFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("genres", genreFieldMapping)

	yearFieldMapping := bleve.NewNumericFieldMapping()
	docMapping.AddFieldMappingsAt("startYear", yearFieldMapping)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}
