package transfer

import (
	"encoding/json"
	"fmt"
	"time"

	"cropwatch/entities"
	"cropwatch/pkg/store"
)

// FormatVersion tags every export so future readers can migrate documents.
const FormatVersion = "1.0"

// Document is the portable snapshot format. Consumers must tolerate unknown
// extra properties, so imports decode leniently.
type Document struct {
	Version     string                          `json:"version"`
	ExportDate  string                          `json:"exportDate"`
	Fields      []entities.Field                `json:"fields,omitempty"`
	Directories []entities.Directory            `json:"directories,omitempty"`
	Results     []entities.AnalysisResult       `json:"results,omitempty"`
	History     []entities.AnalysisHistoryEntry `json:"history,omitempty"`
}

// Gateway serializes the entity store to portable documents and merges them
// back. All mutation goes through the store so its invariants keep holding.
type Gateway struct {
	store *store.Store
	now   func() time.Time
}

func New(st *store.Store) *Gateway {
	return &Gateway{store: st, now: time.Now}
}

func (g *Gateway) stamp(doc Document) Document {
	doc.Version = FormatVersion
	doc.ExportDate = g.now().UTC().Format(time.RFC3339)
	return doc
}

// ExportAll snapshots the whole store: fields, directories, the analysis
// archive and the history log.
func (g *Gateway) ExportAll() (Document, error) {
	fields, err := g.store.ListFields()
	if err != nil {
		return Document{}, err
	}
	dirs, err := g.store.ListDirectories()
	if err != nil {
		return Document{}, err
	}
	results, err := g.store.ListAnalysisResults()
	if err != nil {
		return Document{}, err
	}
	history, err := g.store.ListAnalysisHistory()
	if err != nil {
		return Document{}, err
	}
	return g.stamp(Document{Fields: fields, Directories: dirs, Results: results, History: history}), nil
}

// ExportFieldData snapshots fields and directories only.
func (g *Gateway) ExportFieldData() (Document, error) {
	fields, err := g.store.ListFields()
	if err != nil {
		return Document{}, err
	}
	dirs, err := g.store.ListDirectories()
	if err != nil {
		return Document{}, err
	}
	return g.stamp(Document{Fields: fields, Directories: dirs}), nil
}

// ExportAnalysis serializes a single archived result with its history line.
func (g *Gateway) ExportAnalysis(id string) (Document, error) {
	result, err := g.store.GetAnalysisResult(id)
	if err != nil {
		return Document{}, err
	}
	history, err := g.store.ListAnalysisHistory()
	if err != nil {
		return Document{}, err
	}
	var entries []entities.AnalysisHistoryEntry
	for _, h := range history {
		if h.ID == id {
			entries = append(entries, h)
		}
	}
	return g.stamp(Document{Results: []entities.AnalysisResult{result}, History: entries}), nil
}

// rawDocument distinguishes "fields key absent" from "fields key empty" so
// malformed documents are rejected before any merge work.
type rawDocument struct {
	Version     string               `json:"version"`
	Fields      *[]entities.Field    `json:"fields"`
	Directories []entities.Directory `json:"directories"`
}

// Import parses a document and merges it into the store. Existing records
// win on id collision; the merge is all-or-nothing.
func (g *Gateway) Import(raw []byte) (store.MergeReport, error) {
	var doc rawDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return store.MergeReport{}, fmt.Errorf("%w: %v", entities.ErrInvalidFormat, err)
	}
	if doc.Fields == nil {
		return store.MergeReport{}, fmt.Errorf("%w: document has no fields array", entities.ErrInvalidFormat)
	}
	return g.store.MergeImport(*doc.Fields, doc.Directories)
}
