package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/twinpane/twinpane/pkg/models"
)

// JSONFormatter renders results as machine-readable JSON documents
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type jsonFileMeta struct {
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
	IsDir   bool      `json:"is_dir"`
}

func toJSONMeta(meta *models.FileMeta) *jsonFileMeta {
	if meta == nil {
		return nil
	}
	return &jsonFileMeta{Size: meta.Size, ModTime: meta.ModTime, IsDir: meta.IsDir}
}

type jsonCompareEntry struct {
	Path    string                  `json:"path"`
	Status  models.ComparisonStatus `json:"status"`
	Left    *jsonFileMeta           `json:"left,omitempty"`
	Right   *jsonFileMeta           `json:"right,omitempty"`
	Message string                  `json:"message,omitempty"`
}

type jsonCompareReport struct {
	Left       string               `json:"left"`
	Right      string               `json:"right"`
	Status     models.RunStatus     `json:"status"`
	DurationMS int64                `json:"duration_ms"`
	Counts     models.CompareCounts `json:"counts"`
	Entries    []jsonCompareEntry   `json:"entries"`
}

// Compare renders a directory comparison
func (f *JSONFormatter) Compare(w io.Writer, report *CompareReport) error {
	doc := jsonCompareReport{
		Left:       report.Left,
		Right:      report.Right,
		Status:     report.Status,
		DurationMS: report.Duration.Milliseconds(),
		Counts:     report.Counts,
		Entries:    make([]jsonCompareEntry, 0, len(report.Entries)),
	}
	for _, entry := range report.Entries {
		doc.Entries = append(doc.Entries, jsonCompareEntry{
			Path:    entry.RelativePath,
			Status:  entry.Status,
			Left:    toJSONMeta(entry.Left),
			Right:   toJSONMeta(entry.Right),
			Message: entry.Message,
		})
	}
	return writeJSON(w, doc)
}

type jsonPlanItem struct {
	Path   string            `json:"path"`
	IsDir  bool              `json:"is_dir,omitempty"`
	Action models.SyncAction `json:"action"`
	Status models.ItemStatus `json:"status,omitempty"`
	Error  string            `json:"error,omitempty"`
	Bytes  int64             `json:"bytes,omitempty"`
}

type jsonPlan struct {
	ID        string               `json:"id"`
	Direction models.SyncDirection `json:"direction"`
	CreatedAt time.Time            `json:"created_at"`
	Counts    models.SyncCounts    `json:"counts"`
	Items     []jsonPlanItem       `json:"items"`
}

func toJSONPlan(plan *models.SyncPlan, withStatus bool) jsonPlan {
	doc := jsonPlan{
		ID:        plan.ID,
		Direction: plan.Direction,
		CreatedAt: plan.CreatedAt,
		Counts:    plan.Counts,
		Items:     make([]jsonPlanItem, 0, len(plan.Items)),
	}
	for _, item := range plan.Items {
		jsonItem := jsonPlanItem{
			Path:   item.RelativePath,
			IsDir:  item.IsDir,
			Action: item.Action,
			Bytes:  item.TransferSize(),
		}
		if withStatus {
			jsonItem.Status = item.Status
			jsonItem.Error = item.Error
		}
		doc.Items = append(doc.Items, jsonItem)
	}
	return doc
}

// Plan renders a synchronization plan before execution
func (f *JSONFormatter) Plan(w io.Writer, plan *models.SyncPlan) error {
	return writeJSON(w, toJSONPlan(plan, false))
}

type jsonSyncReport struct {
	Status     models.RunStatus `json:"status"`
	DryRun     bool             `json:"dry_run,omitempty"`
	DurationMS int64            `json:"duration_ms"`
	Plan       jsonPlan         `json:"plan"`
}

// Sync renders the outcome of an executed plan
func (f *JSONFormatter) Sync(w io.Writer, report *SyncReport) error {
	return writeJSON(w, jsonSyncReport{
		Status:     report.Status,
		DryRun:     report.DryRun,
		DurationMS: report.Duration.Milliseconds(),
		Plan:       toJSONPlan(report.Plan, true),
	})
}

type jsonDigestResult struct {
	Path  string                      `json:"path"`
	Size  int64                       `json:"size,omitempty"`
	Sums  map[models.Algorithm]string `json:"sums,omitempty"`
	Error string                      `json:"error,omitempty"`
}

type jsonDigestReport struct {
	Status  models.RunStatus   `json:"status"`
	Match   *models.Algorithm  `json:"match,omitempty"`
	Results []jsonDigestResult `json:"results"`
}

// Digest renders checksum results
func (f *JSONFormatter) Digest(w io.Writer, report *DigestReport) error {
	doc := jsonDigestReport{
		Status:  report.Status,
		Match:   report.Match,
		Results: make([]jsonDigestResult, 0, len(report.Results)),
	}
	for _, result := range report.Results {
		jsonResult := jsonDigestResult{Path: result.Path, Size: result.Size, Sums: result.Sums}
		if result.Err != nil {
			jsonResult.Error = result.Err.Error()
		}
		doc.Results = append(doc.Results, jsonResult)
	}
	return writeJSON(w, doc)
}

type jsonDiffLine struct {
	Number      int             `json:"number,omitempty"`
	Text        string          `json:"text"`
	Kind        models.DiffKind `json:"kind"`
	Placeholder bool            `json:"placeholder,omitempty"`
}

type jsonTextDiff struct {
	Left  string            `json:"left"`
	Right string            `json:"right"`
	Stats models.DiffStats  `json:"stats"`
	Rows  [][2]jsonDiffLine `json:"rows"`
}

// TextDiff renders an aligned side-by-side text comparison
func (f *JSONFormatter) TextDiff(w io.Writer, report *TextDiffReport) error {
	doc := jsonTextDiff{
		Left:  report.Left,
		Right: report.Right,
		Stats: report.Stats,
		Rows:  make([][2]jsonDiffLine, 0, len(report.Panes.Left)),
	}
	for n := range report.Panes.Left {
		left := report.Panes.Left[n]
		right := report.Panes.Right[n]
		doc.Rows = append(doc.Rows, [2]jsonDiffLine{
			{Number: left.Number, Text: left.Text, Kind: left.Kind, Placeholder: left.Placeholder},
			{Number: right.Number, Text: right.Text, Kind: right.Kind, Placeholder: right.Placeholder},
		})
	}
	return writeJSON(w, doc)
}

type jsonBinaryRow struct {
	Offset  int64  `json:"offset"`
	Left    string `json:"left,omitempty"`
	Right   string `json:"right,omitempty"`
	Differs bool   `json:"differs"`
}

type jsonBinaryDiff struct {
	Left  string          `json:"left"`
	Right string          `json:"right"`
	Rows  []jsonBinaryRow `json:"rows"`
}

// BinaryDiff renders a chunked hex comparison
func (f *JSONFormatter) BinaryDiff(w io.Writer, report *BinaryDiffReport) error {
	doc := jsonBinaryDiff{
		Left:  report.Left,
		Right: report.Right,
		Rows:  make([]jsonBinaryRow, 0, len(report.Rows)),
	}
	for _, row := range report.Rows {
		doc.Rows = append(doc.Rows, jsonBinaryRow{
			Offset:  row.Offset,
			Left:    row.Left,
			Right:   row.Right,
			Differs: row.Differs,
		})
	}
	return writeJSON(w, doc)
}
