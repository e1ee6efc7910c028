package models

import "time"

// Dataset describes an uploaded exploration dataset as returned by the
// backend's data endpoints.
type Dataset struct {
	DatasetID  string    `json:"dataset_id"`
	ProjectID  string    `json:"project_id"`
	Name       string    `json:"name"`
	DataType   string    `json:"data_type"`
	FileURL    string    `json:"file_url,omitempty"`
	VisibleTo  string    `json:"visible_to,omitempty"`
	UploadDate time.Time `json:"upload_date"`
}
