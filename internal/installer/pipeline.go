package installer

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"ccmenubar-installer/internal/config"
	"ccmenubar-installer/internal/logger"
	"ccmenubar-installer/internal/state"
)

// Options selects where the source tree comes from and which optional
// stages run.
// - Archive: local release archive; still checked against the pinned sha256.
// - Source: already-extracted source directory; no archive, no checksum.
// - Neither: the release is downloaded into the cache.
type Options struct {
	Archive    string
	Source     string
	SkipVerify bool
	Client     *http.Client
}

// Run takes the formula from release archive to verified install: fetch or
// locate the archive, pass the integrity gate, extract, install, print the
// notice, write the receipt and run the smoke test.
func (i *Installer) Run(ctx context.Context, opts Options) (*Result, error) {
	cfg := i.Config
	f := cfg.Formula
	f.SHA256 = config.NormalizeSHA256(f.SHA256)

	Preflight(f)

	prev, err := state.LoadReceipt(cfg.ReceiptPath())
	if err != nil {
		logger.Warn("[WARN] Ignoring unreadable receipt: %v\n", err)
		prev = &state.Receipt{}
	}
	if !prev.Empty() {
		if prev.Version != f.Version {
			logger.Info("[INFO] Upgrading %s from %s to %s\n", f.Name, prev.Version, f.Version)
		} else {
			logger.Info("[INFO] Reinstalling %s@%s\n", f.Name, f.Version)
		}
	}

	receipt := &state.Receipt{Name: f.Name, Version: f.Version}

	srcDir := opts.Source
	if srcDir == "" {
		archive := opts.Archive
		if archive == "" {
			archive, err = Fetch(ctx, opts.Client, f, cfg.Paths.Cache)
			if err != nil {
				return nil, err
			}
		} else if err := VerifySHA256(archive, f.SHA256); err != nil {
			return nil, err
		}
		receipt.Source = archive
		receipt.SHA256 = f.SHA256

		staging, err := os.MkdirTemp("", f.Name+"-src-*")
		if err != nil {
			return nil, fmt.Errorf("create staging directory: %w", err)
		}
		defer os.RemoveAll(staging)

		srcDir, err = ExtractArchive(archive, staging)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", archive, err)
		}
		logger.Debug("[DEBUG] Extracted %s to %s\n", archive, srcDir)
	} else {
		receipt.Source = srcDir
	}

	res, err := i.Install(ctx, srcDir)
	if err != nil {
		return nil, err
	}

	PrintNotice(cfg)

	receipt.InstalledAt = time.Now().UTC()
	receipt.Binary = res.Binary
	receipt.Bundle = res.Bundle
	receipt.Link = res.Link
	receipt.Example = res.Example
	receipt.Doc = res.Doc
	receipt.Icon = res.Icon
	if err := state.SaveReceipt(cfg.ReceiptPath(), receipt); err != nil {
		logger.Warn("[WARN] Failed to save receipt: %v\n", err)
	}

	if !opts.SkipVerify {
		if err := Verify(ctx, res.Binary, f.Verify.Args, f.Verify.Expect); err != nil {
			return res, err
		}
	}
	return res, nil
}
