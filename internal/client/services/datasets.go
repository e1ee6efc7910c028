package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/karanja-droid/geo-miner-ai-sub000/internal/client/api"
	"github.com/karanja-droid/geo-miner-ai-sub000/internal/client/models"
	"github.com/karanja-droid/geo-miner-ai-sub000/internal/logging"
)

const (
	datasetListPath   = "/api/v1/data/list"
	datasetUploadPath = "/api/v1/data/upload"

	listRetryBudget = 3
)

// DatasetService exposes the exploration-dataset endpoints. Reads are
// retried through the transient-failure budget; uploads are issued exactly
// once.
type DatasetService struct {
	client *api.Client
	log    logging.Logger
}

func NewDatasetService(client *api.Client, log logging.Logger) *DatasetService {
	return &DatasetService{client: client, log: log.With("component", "datasets")}
}

// List fetches the datasets visible to the current user.
func (s *DatasetService) List(ctx context.Context) ([]models.Dataset, error) {
	res := s.client.RequestWithRetry(ctx, api.RequestOptions{
		Method: http.MethodGet,
		Path:   datasetListPath,
	}, listRetryBudget)
	if !res.OK() {
		return nil, errors.New(res.Err)
	}

	var datasets []models.Dataset
	if err := res.Decode(&datasets); err != nil {
		return nil, fmt.Errorf("decode dataset list: %w", err)
	}
	return datasets, nil
}

// UploadParams describes a dataset upload: the form fields the backend
// expects alongside the file part.
type UploadParams struct {
	ProjectID   string
	Name        string
	DataType    string
	Description string
	Filename    string
}

// Upload sends a dataset file as a multipart request. The multipart payload
// carries its own content type; nothing forces JSON onto it.
func (s *DatasetService) Upload(ctx context.Context, params UploadParams, file io.Reader) (*models.Dataset, error) {
	fields := map[string]string{
		"datasetName": params.Name,
		"dataType":    params.DataType,
		"projectId":   params.ProjectID,
	}
	if params.Description != "" {
		fields["description"] = params.Description
	}

	body, contentType, err := api.MultipartPayload(fields, "file", params.Filename, file)
	if err != nil {
		return nil, fmt.Errorf("build upload payload: %w", err)
	}

	res := s.client.Request(ctx, api.RequestOptions{
		Method:      http.MethodPost,
		Path:        datasetUploadPath,
		RawBody:     body,
		ContentType: contentType,
	})
	if !res.OK() {
		return nil, errors.New(res.Err)
	}

	var dataset models.Dataset
	if err := res.Decode(&dataset); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}

	s.log.Info(ctx, "dataset uploaded", "dataset_id", dataset.DatasetID, "project_id", dataset.ProjectID)
	return &dataset, nil
}
