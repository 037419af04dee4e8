package artifacts

import (
	"titanicprep/domain/core"
)

// Kind names a persisted artifact
type Kind string

const (
	KindCleanedTable  Kind = "cleaned_table"
	KindFeatureMatrix Kind = "feature_matrix"
	KindWorkbook      Kind = "workbook"
)

// File describes one written artifact
type File struct {
	Kind    Kind      `json:"kind"`
	Path    string    `json:"path"`
	Rows    int       `json:"rows"`
	Columns []string  `json:"columns"`
	SHA256  core.Hash `json:"sha256"`
}

// Manifest records everything a Save call wrote
type Manifest struct {
	RunID     core.RunID     `json:"run_id"`
	OutputDir string         `json:"output_dir"`
	Files     []File         `json:"files"`
	CreatedAt core.Timestamp `json:"created_at"`
}

// NewManifest starts an empty manifest for a run
func NewManifest(runID core.RunID, outputDir string) *Manifest {
	return &Manifest{RunID: runID, OutputDir: outputDir, CreatedAt: core.Now()}
}

// Add appends a written file
func (m *Manifest) Add(f File) {
	m.Files = append(m.Files, f)
}

// Find returns the file of the given kind
func (m *Manifest) Find(kind Kind) (File, bool) {
	for _, f := range m.Files {
		if f.Kind == kind {
			return f, true
		}
	}
	return File{}, false
}
