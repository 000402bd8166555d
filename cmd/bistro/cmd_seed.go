package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/masudmolla6/bistro-restaurant-server/app/models"
	"github.com/masudmolla6/bistro-restaurant-server/app/repositories"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/logger"
)

var seedFile string

// seedData is the shape of a seed file. Menu and review ids may be given as
// 24-char hex strings; missing ids are generated.
type seedData struct {
	Menu    []models.MenuItem `json:"menu"`
	Reviews []models.Review   `json:"reviews"`
}

// bistro seed --file data.json: load menu and reviews into MongoDB.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load menu items and reviews from a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(seedFile)
		if err != nil {
			return err
		}
		defer f.Close()

		data, err := readSeed(f)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		rt, err := boot(ctx, false)
		if err != nil {
			return err
		}
		defer rt.shutdown(context.Background())

		menuN, reviewN, err := seed(ctx, rt.deps.Store, data)
		if err != nil {
			return err
		}
		logger.Info("seed complete", "menu", menuN, "reviews", reviewN)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "path to the seed JSON file")
	_ = seedCmd.MarkFlagRequired("file")
}

func readSeed(r io.Reader) (seedData, error) {
	var data seedData
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return seedData{}, fmt.Errorf("seed: decode: %w", err)
	}
	return data, nil
}

func seed(ctx context.Context, store repositories.Store, data seedData) (int, int, error) {
	menuN, err := store.Menu.InsertMany(ctx, data.Menu)
	if err != nil {
		return menuN, 0, fmt.Errorf("seed: menu: %w", err)
	}
	reviewN, err := store.Reviews.InsertMany(ctx, data.Reviews)
	if err != nil {
		return menuN, reviewN, fmt.Errorf("seed: reviews: %w", err)
	}
	return menuN, reviewN, nil
}
