package manager

import (
	"fmt"

	"github.com/travigo/ridership/pkg/dataimporter/datasets"
)

func GetDataset(directory string, identifier string) (datasets.DataSet, error) {
	registered, err := GetRegisteredDataSets(directory)
	if err != nil {
		return datasets.DataSet{}, err
	}

	for _, dataset := range registered {
		if dataset.Identifier == identifier {
			return dataset, nil
		}
	}

	return datasets.DataSet{}, fmt.Errorf("dataset %s could not be found", identifier)
}
