package models

// DataNode is the graph vertex for one uploaded dataset. Data only flows out
// of datasets, so a DataNode carries a single outgoing edge set and never
// appears as a connection target.
type DataNode struct {
	ID            string  `gorm:"primaryKey;size:255" json:"id"`
	X             float64 `gorm:"not null" json:"x"`
	Y             float64 `gorm:"not null" json:"y"`
	ProjectID     string  `gorm:"size:255;not null;index" json:"project_id"`
	DataProfileID string  `gorm:"size:255;not null" json:"data_profile_id"`
	ConnectedTo   IDSet   `gorm:"column:connected_nodes;type:text" json:"connected_nodes"`
}

// PipelineNode is the graph vertex for one transform stage. Inputs may come
// from either node kind; outputs only ever point at other PipelineNodes.
type PipelineNode struct {
	ID              string  `gorm:"primaryKey;size:255" json:"id"`
	X               float64 `gorm:"not null" json:"x"`
	Y               float64 `gorm:"not null" json:"y"`
	ProjectID       string  `gorm:"size:255;not null;index" json:"project_id"`
	PipelineStageID string  `gorm:"size:255;not null" json:"pipeline_stage_id"`
	InputNodes      IDSet   `gorm:"column:input_nodes;type:text" json:"input_nodes"`
	OutputNodes     IDSet   `gorm:"column:output_nodes;type:text" json:"output_nodes"`
}
