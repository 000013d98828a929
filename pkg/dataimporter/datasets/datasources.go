package datasets

type DataSource struct {
	Identifier string `validate:"required"`
	Region     string
	Provider   Provider
	Datasets   []DataSet `validate:"required,dive"`
}
