package ports

import (
	"context"

	"titanicprep/domain/artifacts"

	"github.com/go-gota/gota/dataframe"
)

// TableLoader reads a passenger table from a file
type TableLoader interface {
	Load(ctx context.Context, path string) (dataframe.DataFrame, error)
}

// ArtifactWriter persists the transformed table
type ArtifactWriter interface {
	Save(ctx context.Context, df dataframe.DataFrame) (*artifacts.Manifest, error)
}

// Stage is one table-to-table transformation of the pipeline
type Stage interface {
	Name() string
	Apply(df dataframe.DataFrame) (dataframe.DataFrame, error)
}
