package etl

import (
	"github.com/travigo/ridership/pkg/archiver"
	"github.com/travigo/ridership/pkg/dataimporter/datasets"
	"github.com/travigo/ridership/pkg/ridership"
)

// FlowFromDataset builds a flow for a registered dataset. The store is only
// attached when the dataset asks for it.
func FlowFromDataset(dataset datasets.DataSet, store RecordStore) *Flow {
	flow := &Flow{
		InputPath:  dataset.Source,
		OutputPath: dataset.OutputPath,
		Format:     dataset.OutputFormat,
		ScriptPath: dataset.PreprocessScript,
		Options: ridership.Options{
			Schema:   dataset.Schema,
			Lookback: dataset.Lookback,
		},
	}

	if dataset.Bucket != "" {
		flow.Sinks = append(flow.Sinks, &BucketSink{
			Archiver: &archiver.Archiver{
				CloudBucketName: dataset.Bucket,
				ObjectName:      dataset.BucketObject,
			},
		})
	}
	if dataset.Store && store != nil {
		flow.Sinks = append(flow.Sinks, &StoreSink{Store: store})
	}
	if dataset.Index {
		flow.Sinks = append(flow.Sinks, &IndexSink{})
	}

	return flow
}
