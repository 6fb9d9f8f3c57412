package main

import (
	"fmt"

	"github.com/latinrect/latinrect/dispatch"
	"github.com/latinrect/latinrect/store"
)

func parseMode(s string) (dispatch.Mode, error) {
	switch s {
	case "", "auto":
		return dispatch.ModeAuto, nil
	case "single":
		return dispatch.ModeSingle, nil
	case "parallel":
		return dispatch.ModeParallel, nil
	default:
		return 0, fmt.Errorf("latinctl: unknown mode %q (want auto, single, or parallel)", s)
	}
}

func buildOptions(cfg *rootConfig) (dispatch.Options, error) {
	mode, err := parseMode(cfg.Mode)
	if err != nil {
		return dispatch.Options{}, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return dispatch.Options{}, err
	}

	opts := dispatch.Options{
		Mode:     mode,
		Workers:  cfg.Workers,
		CacheDir: cfg.CacheDir,
		Logger:   logger,
	}
	if cfg.Store != "" {
		opts.Store = store.NewYAMLFile(cfg.Store)
	}
	return opts, nil
}
