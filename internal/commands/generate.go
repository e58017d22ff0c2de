package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spriteforge/autopaint/internal/extract"
	"github.com/spriteforge/autopaint/internal/logger"
	"github.com/spriteforge/autopaint/internal/orchestrator"
	"github.com/spriteforge/autopaint/internal/prompt"
	"github.com/spriteforge/autopaint/internal/script"
	"github.com/spriteforge/autopaint/internal/snapshot"
	"github.com/spriteforge/autopaint/internal/store"
	"github.com/spriteforge/autopaint/internal/store/model"
	"github.com/spriteforge/autopaint/internal/store/sqlite"
)

var (
	genPrompt   string
	genImage    string
	genOut      string
	genExec     bool
	genAseprite string
	genNoWrap   bool
	genSel      []int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and emit an Aseprite Lua script from a prompt",
	Long: `Generate asks the configured AI backends, in priority order, to produce a
Lua script for the given request. A PNG snapshot of the canvas, when
provided, is sent to multimodal backends as visual context.

By default the wrapped script is written to stdout. Use --out to write it
to a file, or --exec to run it through an Aseprite batch invocation.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&genPrompt, "prompt", "p", "", "what to draw (required)")
	generateCmd.Flags().StringVarP(&genImage, "image", "i", "", "PNG snapshot of the current canvas")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "write the generated script to this file")
	generateCmd.Flags().BoolVar(&genExec, "exec", false, "execute the script via aseprite -b --script")
	generateCmd.Flags().StringVar(&genAseprite, "aseprite", "", "aseprite binary (default: aseprite on PATH)")
	generateCmd.Flags().BoolVar(&genNoWrap, "no-wrap", false, "emit the extracted code without the transaction/helper wrapper")
	generateCmd.Flags().IntSliceVar(&genSel, "selection", nil, "restrict drawing to x,y,w,h")
	_ = generateCmd.MarkFlagRequired("prompt")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	hints, img, err := collectContext(cmd.Context())
	if err != nil {
		return err
	}

	rc := prompt.NewRequestContext(genPrompt, hints, img)

	orch := orchestrator.New(backendSpecs(cfg), creds, logger.Get(), orchestratorOptions(cfg)...)
	task := orchestrator.NewTask(orch, cfg.ShutdownGrace())
	defer task.Close()

	// Ctrl-C cancels the run cooperatively; the result simply never
	// surfaces, which is all the user needs to see.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)

	done := task.Start(rc)

	var res orchestrator.SessionResult
	select {
	case res = <-done:
	case <-sigs:
		task.Cancel()
		res = <-done
	}

	code, hasCode := "", false
	if res.Status == orchestrator.StatusCompleted {
		code, hasCode = extract.Extract(res.Text, "lua")
	}
	recordSession(cmd.Context(), res, hasCode)

	switch res.Status {
	case orchestrator.StatusCancelled:
		return nil
	case orchestrator.StatusExhausted:
		return fmt.Errorf("generation failed: %s", res.ErrorMessage)
	}

	if !hasCode {
		// Conversational answer: surface it as a preview instead of
		// treating it as a failure.
		logger.Info("reply contains no executable code, printing preview",
			zap.String("provider", string(res.ProviderID)))
		fmt.Fprintln(cmd.OutOrStdout(), res.Text)
		return nil
	}

	if !genNoWrap {
		code = script.WrapLua(code, hints)
	}

	logger.Info("script generated",
		zap.String("provider", string(res.ProviderID)),
		zap.Int64("elapsed_ms", res.Elapsed.Milliseconds()),
	)

	return emit(cmd, code)
}

// collectContext captures the snapshot and derives the prompt hints.
func collectContext(ctx context.Context) (prompt.Hints, *snapshot.Image, error) {
	var hints prompt.Hints

	if len(genSel) > 0 {
		if len(genSel) != 4 {
			return hints, nil, fmt.Errorf("--selection wants x,y,w,h")
		}
		hints.Selection = &prompt.Rect{X: genSel[0], Y: genSel[1], W: genSel[2], H: genSel[3]}
	}

	if genImage == "" {
		return hints, nil, nil
	}

	img, err := (&snapshot.FileSource{Path: genImage}).Capture(ctx)
	if err != nil {
		if errors.Is(err, snapshot.ErrNoDocument) {
			return hints, nil, fmt.Errorf("no snapshot at %s", genImage)
		}
		return hints, nil, err
	}

	hints.CanvasWidth = img.Width
	hints.CanvasHeight = img.Height
	return hints, img, nil
}

func emit(cmd *cobra.Command, code string) error {
	ctx := cmd.Context()

	if genExec {
		runner := &script.AsepriteRunner{Binary: genAseprite}
		return runner.Run(ctx, code)
	}

	if genOut != "" {
		f, err := os.Create(genOut)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", genOut, err)
		}
		defer func() {
			_ = f.Close()
		}()
		return (&script.WriterRunner{W: f}).Run(ctx, code)
	}

	return (&script.WriterRunner{W: cmd.OutOrStdout()}).Run(ctx, code)
}

// recordSession logs the run to the history store. History problems are
// never allowed to fail the generation itself.
func recordSession(ctx context.Context, res orchestrator.SessionResult, hasCode bool) {
	if !cfg.History.Enabled {
		return
	}

	repo, err := sqlite.NewSQLiteStorage(cfg.History.Path)
	if err != nil {
		logger.Warn("history store unavailable", zap.Error(err))
		return
	}
	defer func() {
		_ = repo.Close()
	}()

	logSession(ctx, repo, res, hasCode)
}

func logSession(ctx context.Context, repo store.Repository, res orchestrator.SessionResult, hasCode bool) {
	session := &model.Session{
		ID:           res.RunID,
		Prompt:       genPrompt,
		ProviderID:   string(res.ProviderID),
		Status:       string(res.Status),
		ErrorMessage: res.ErrorMessage,
		HasCode:      hasCode,
		LatencyMS:    res.Elapsed.Milliseconds(),
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.Sessions().Log(ctx, session); err != nil {
		logger.Warn("failed to record session", zap.Error(err))
	}
}
