// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/tomtom215/closetmate/internal/dataset"
	"github.com/tomtom215/closetmate/internal/logging"
	"github.com/tomtom215/closetmate/internal/recommend"
	"github.com/tomtom215/closetmate/internal/recommend/algorithms"
	"github.com/tomtom215/closetmate/internal/recommend/storage"
	"github.com/tomtom215/closetmate/internal/recommend/training"
)

func (a *app) trainCommand() *cli.Command {
	return &cli.Command{
		Name:  "train",
		Usage: "Train a bundle from the sentence and attribute CSVs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "sentences",
				Usage: "Outfit sentence CSV (overrides TRAIN_SENTENCES_PATH)",
			},
			&cli.StringFlag{
				Name:  "attributes",
				Usage: "Outfit color/fabric CSV (overrides TRAIN_ATTRIBUTES_PATH)",
			},
			&cli.BoolFlag{
				Name:  "prune",
				Usage: "Delete old versions after saving, keeping MODEL_KEEP",
			},
		},
		Action: a.train,
	}
}

func (a *app) train(ctx context.Context, cmd *cli.Command) error {
	logger := logging.CtxWith(ctx).Str("command", "train").Logger()

	src := a.cfg.Sources()
	if p := cmd.String("sentences"); p != "" {
		src.SentencesPath = p
	}
	if p := cmd.String("attributes"); p != "" {
		src.AttributesPath = p
	}

	store, err := storage.NewStore(a.cfg.Model.Dir)
	if err != nil {
		return err
	}

	reader, err := dataset.NewCSVReader()
	if err != nil {
		return err
	}
	defer reader.Close() //nolint:errcheck // in-memory connection

	trainer, err := algorithms.NewSkipGram(a.cfg.SkipGramConfig())
	if err != nil {
		return err
	}

	pipeline, err := training.NewPipeline(reader, trainer, store, a.cfg.Hyperparameters(), logger)
	if err != nil {
		return err
	}

	report, err := pipeline.Run(ctx, src)
	if err != nil {
		return err
	}

	if cmd.Bool("prune") && a.cfg.Model.Keep > 0 {
		removed, err := store.Prune(ctx, a.cfg.Model.Keep)
		if err != nil {
			return err
		}
		logger.Info().Int("removed", removed).Int("keep", a.cfg.Model.Keep).Msg("pruned old bundles")
	}

	return writeJSON(cmd, report)
}

func (a *app) recommendCommand() *cli.Command {
	return &cli.Command{
		Name:  "recommend",
		Usage: "Complete an outfit described by a JSON request",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "request",
				Usage: "Request JSON file, or - for stdin",
				Value: "-",
			},
			&cli.IntFlag{
				Name:  "bundle-version",
				Usage: "Bundle version to serve (overrides MODEL_VERSION, 0 for latest)",
			},
		},
		Action: a.recommend,
	}
}

func (a *app) recommend(ctx context.Context, cmd *cli.Command) error {
	req, err := readRequest(cmd.String("request"), cmd.Root().Reader)
	if err != nil {
		return err
	}
	if req.RequestID != "" {
		ctx = logging.ContextWithRequestID(ctx, req.RequestID)
	}

	engine, err := a.engine(cmd)
	if err != nil {
		return err
	}

	result, err := engine.Recommend(ctx, req)
	if err != nil {
		return err
	}
	return writeJSON(cmd, result)
}

func (a *app) inspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Show a bundle manifest or the nearest historical outfit",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "bundle-version",
				Usage: "Bundle version (overrides MODEL_VERSION, 0 for latest)",
			},
			&cli.StringSliceFlag{
				Name:  "descriptor",
				Usage: "Item descriptor; repeat to describe an outfit",
			},
		},
		Action: a.inspect,
	}
}

func (a *app) inspect(ctx context.Context, cmd *cli.Command) error {
	if descriptors := cmd.StringSlice("descriptor"); len(descriptors) > 0 {
		engine, err := a.engine(cmd)
		if err != nil {
			return err
		}
		nearest, err := engine.NearestOutfit(ctx, descriptors)
		if err != nil {
			return err
		}
		return writeJSON(cmd, nearest)
	}

	store, err := storage.NewStore(a.cfg.Model.Dir)
	if err != nil {
		return err
	}
	manifest, err := store.Manifest(a.bundleVersion(cmd))
	if err != nil {
		return err
	}
	return writeJSON(cmd, manifest)
}

func (a *app) listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List stored bundle versions",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			store, err := storage.NewStore(a.cfg.Model.Dir)
			if err != nil {
				return err
			}
			manifests, err := store.List(ctx)
			if err != nil {
				return err
			}
			return writeJSON(cmd, manifests)
		},
	}
}

func (a *app) pruneCommand() *cli.Command {
	return &cli.Command{
		Name:  "prune",
		Usage: "Delete all but the newest bundle versions",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "keep",
				Usage: "Versions to keep (overrides MODEL_KEEP)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			keep := a.cfg.Model.Keep
			if cmd.IsSet("keep") {
				keep = cmd.Int("keep")
			}
			if keep < 1 {
				return fmt.Errorf("keep must be at least 1, got %d", keep)
			}

			store, err := storage.NewStore(a.cfg.Model.Dir)
			if err != nil {
				return err
			}
			removed, err := store.Prune(ctx, keep)
			if err != nil {
				return err
			}
			logging.CtxInfo(ctx).Int("removed", removed).Int("keep", keep).Msg("pruned old bundles")
			return writeJSON(cmd, map[string]int{"removed": removed, "keep": keep})
		},
	}
}

// engine builds an engine over a lazily loaded bundle.
func (a *app) engine(cmd *cli.Command) (*recommend.Engine, error) {
	store, err := storage.NewStore(a.cfg.Model.Dir)
	if err != nil {
		return nil, err
	}
	loader := storage.NewLoader(store, a.bundleVersion(cmd), logging.WithComponent("storage"))
	return recommend.NewEngine(a.cfg.EngineConfig(), loader, logging.WithComponent("recommend"))
}

// bundleVersion returns --bundle-version when set, else the configured version.
func (a *app) bundleVersion(cmd *cli.Command) int {
	if cmd.IsSet("bundle-version") {
		return cmd.Int("bundle-version")
	}
	return a.cfg.Model.Version
}

// readRequest decodes an OutfitRequest from path, or from stdin when path is "-".
func readRequest(path string, stdin io.Reader) (recommend.Request, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return recommend.Request{}, fmt.Errorf("open request: %w", err)
		}
		defer f.Close() //nolint:errcheck // read-only
		r = f
	}
	if r == nil {
		r = os.Stdin
	}

	var body recommend.OutfitRequest
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		return recommend.Request{}, fmt.Errorf("decode request: %w", err)
	}
	return body.ToRequest()
}

// writeJSON prints v as indented JSON on the root command's writer.
func writeJSON(cmd *cli.Command, v interface{}) error {
	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
