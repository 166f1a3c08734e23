package notes

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/lectura/server/internal/agent/model"
	errx "github.com/lectura/server/internal/core/error"
	logx "github.com/lectura/server/pkg/logger"
)

// VisionCompleter is the slice of the chat client the pipeline needs.
type VisionCompleter interface {
	Available() bool
	CompleteVision(ctx context.Context, system, prompt string, images [][]byte) (string, error)
}

// Result is one processed note set.
type Result struct {
	NoteName     string
	LaTeX        string
	TexPath      string
	PDFPath      string
	CompileError string
}

type Pipeline struct {
	llm VisionCompleter
	cfg model.NotesConfig
}

func NewPipeline(llm VisionCompleter, cfg model.NotesConfig) *Pipeline {
	return &Pipeline{llm: llm, cfg: cfg}
}

// Process runs the full chain for one or more photos of the same lecture:
// denoise, transcribe, repair, save, compile. The scratch directory with the
// intermediate images is removed afterwards; the tex (and pdf when the
// toolchain is present) land under the configured docs directory.
func (p *Pipeline) Process(ctx context.Context, imagePaths []string) (*Result, error) {
	if len(imagePaths) == 0 {
		return nil, fmt.Errorf("no images to process")
	}
	if p.llm == nil || !p.llm.Available() {
		return nil, errx.Remote(fmt.Errorf("transcription needs the vision model"))
	}

	scratch := filepath.Join(os.TempDir(), "lectura_processed_"+uuid.NewString())
	if !p.cfg.KeepScratch {
		defer os.RemoveAll(scratch)
	}

	images := make([][]byte, 0, len(imagePaths))
	for i, in := range imagePaths {
		logx.Info().Int("image", i+1).Int("total", len(imagePaths)).Str("path", in).Msg("enhancing image")
		art, err := Denoise(in, scratch)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(art.Enhanced)
		if err != nil {
			return nil, fmt.Errorf("read enhanced image: %w", err)
		}
		images = append(images, data)
	}

	noteName := fmt.Sprintf("notes_%s", time.Now().Format("2006-01-02_15-04-05"))
	if len(imagePaths) > 1 {
		noteName = fmt.Sprintf("%s_multi%d", noteName, len(imagePaths))
	}

	latexSrc, err := p.llm.CompleteVision(ctx, transcribeSystemPrompt, instructionText(len(images)), images)
	if err != nil {
		return nil, err
	}
	latexSrc = RepairDocument(StripFences(latexSrc))

	if err := os.MkdirAll(p.cfg.DocsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create docs dir: %w", err)
	}
	texPath := filepath.Join(p.cfg.DocsDir, noteName+".tex")
	if err := os.WriteFile(texPath, []byte(latexSrc), 0o644); err != nil {
		return nil, fmt.Errorf("write tex file: %w", err)
	}
	logx.Info().Str("path", texPath).Msg("wrote LaTeX source")

	res := &Result{NoteName: noteName, LaTeX: latexSrc, TexPath: texPath}
	pdf, err := Compile(ctx, p.cfg.DocsDir, noteName, time.Duration(p.cfg.CompileTimeoutSeconds)*time.Second)
	if err != nil {
		// The document itself is the deliverable; a compile failure is
		// reported, not fatal.
		res.CompileError = err.Error()
		logx.Warn().Str("note", noteName).Msg("PDF compilation failed")
		return res, nil
	}
	res.PDFPath = pdf
	return res, nil
}
