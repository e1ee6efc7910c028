package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/karanja-droid/geo-miner-ai-sub000/internal/client/services"
)

// Datasets lists the datasets visible to the current user.
func (a *App) Datasets(ctx context.Context) error {
	datasets, err := a.datasets.List(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if len(datasets) == 0 {
		printlnFn("No datasets")
		return nil
	}

	for _, d := range datasets {
		printlnFn(fmt.Sprintf("%s  %-12s %s", d.DatasetID, d.DataType, d.Name))
	}
	return nil
}

// Upload prompts for dataset details and a local file path, then uploads the
// file to the backend.
func (a *App) Upload(ctx context.Context) error {
	projectID, err := getSimpleText(a.reader, "Enter project ID", os.Stdout)
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter dataset name", os.Stdout)
	if err != nil {
		return err
	}

	dataType, err := getSimpleText(a.reader, "Enter data type (e.g. geological, geochemical)", os.Stdout)
	if err != nil {
		return err
	}

	description, err := getSimpleText(a.reader, "Enter description (optional)", os.Stdout)
	if err != nil {
		return err
	}

	path, err := getSimpleText(a.reader, "Enter file path", os.Stdout)
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	defer file.Close()

	params := services.UploadParams{
		ProjectID:   projectID,
		Name:        name,
		DataType:    dataType,
		Description: description,
		Filename:    filepath.Base(path),
	}

	dataset, err := a.datasets.Upload(ctx, params, file)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Uploaded dataset", dataset.DatasetID)
	return nil
}
