package main

import (
	"context"
	"errors"
	"io"
	"sort"

	"subclash/internal/collect"
	"subclash/internal/config"
	"subclash/internal/convert"
	"subclash/internal/link"
	"subclash/internal/logger"
	"subclash/internal/render"
)

// runConvert is the whole pipeline: collect, parse, report, render.
func runConvert(ctx context.Context, in io.Reader, out io.Writer, cfg *config.Config, interactive bool) error {
	renderer, err := render.Get(cfg.Output.Format)
	if err != nil {
		return err
	}

	lines, err := collect.Lines(ctx, in, out, collect.Options{
		Prompt:      cfg.Input.Prompt,
		Terminator:  cfg.Input.Terminator,
		Interactive: interactive,
	})
	if err != nil {
		return err
	}
	logger.Log.Debugf("Collected %d lines", len(lines))

	renderOpts := render.Options{GroupName: cfg.Output.GroupName}
	res := convert.Batch(lines, convert.Options{
		Dedupe:   cfg.Output.Dedupe,
		Reserved: []string{renderOpts.GroupNameOrDefault()},
	})
	for _, f := range res.Failures {
		if errors.Is(f.Err, link.ErrUnsupportedScheme) {
			logger.Log.Warnf("❌ Line %d: link not recognized: %s", f.Line, snippet(f.Raw))
			continue
		}
		logger.Log.Warnf("❌ Line %d skipped: %v", f.Line, f.Err)
	}

	if len(res.Failures) > 0 {
		counts := res.FailureCounts()
		reasons := make([]string, 0, len(counts))
		for reason := range counts {
			reasons = append(reasons, reason)
		}
		sort.Strings(reasons)
		for _, reason := range reasons {
			logger.Log.Infof("   -> skipped %s: %d", reason, counts[reason])
		}
	}

	if err := res.Err(); err != nil {
		return err
	}

	for _, r := range res.Records {
		logger.Log.Debugf("   -> %s", r.Describe())
	}
	logger.Log.Infof("✅ Parsed %d of %d links.", len(res.Records), len(lines))

	return renderer.Render(out, res.Records, renderOpts)
}

func snippet(s string) string {
	const max = 48
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
