package datasets

import (
	"github.com/travigo/ridership/pkg/dataexporter"
	"github.com/travigo/ridership/pkg/ridership"
)

type DataSet struct {
	Identifier    string `validate:"required"`
	DataSourceRef string `yaml:"-" json:"-"`

	Provider Provider `yaml:"-"`

	// Local path or http(s) URL of the raw ridership CSV
	Source string `validate:"required"`

	PreprocessScript string

	OutputPath   string              `validate:"required"`
	OutputFormat dataexporter.Format `validate:"omitempty,oneof=csv parquet"`

	Bucket       string
	BucketObject string

	Schema   ridership.Schema
	Lookback ridership.LookbackMode `validate:"omitempty,oneof=positional calendar"`

	Store bool
	Index bool
}

type Provider struct {
	Name    string
	Website string `validate:"omitempty,url"`
}
