package notes

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lectura/server/internal/agent/model"
	errx "github.com/lectura/server/internal/core/error"
)

type stubVision struct {
	available bool
	reply     string
	images    int
	prompt    string
}

func (s *stubVision) Available() bool { return s.available }

func (s *stubVision) CompleteVision(_ context.Context, _ string, prompt string, images [][]byte) (string, error) {
	s.images = len(images)
	s.prompt = prompt
	return s.reply, nil
}

func TestPipelineProcess(t *testing.T) {
	dir := t.TempDir()
	in := writeTestImage(t, dir, "board.png")

	vis := &stubVision{available: true, reply: "```latex\n\\documentclass{article}\n\\begin{document}\n$x^2$\n\\end{document}\n```"}
	p := NewPipeline(vis, model.NotesConfig{DocsDir: filepath.Join(dir, "docs"), CompileTimeoutSeconds: 5})

	res, err := p.Process(context.Background(), []string{in})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(res.NoteName, "notes_"))
	require.FileExists(t, res.TexPath)
	require.Equal(t, 1, vis.images)
	require.Contains(t, res.LaTeX, `\documentclass{article}`)
	require.Contains(t, res.LaTeX, `\usepackage{amssymb}`)
	require.NotContains(t, res.LaTeX, "```")
}

func TestPipelineMultipleImages(t *testing.T) {
	dir := t.TempDir()
	a := writeTestImage(t, dir, "a.png")
	b := writeTestImage(t, dir, "b.png")

	vis := &stubVision{available: true, reply: `$x$`}
	p := NewPipeline(vis, model.NotesConfig{DocsDir: filepath.Join(dir, "docs"), CompileTimeoutSeconds: 5})

	res, err := p.Process(context.Background(), []string{a, b})
	require.NoError(t, err)
	require.Equal(t, 2, vis.images)
	require.Contains(t, res.NoteName, "_multi2")
	require.Contains(t, vis.prompt, "2 images")
}

func TestPipelineNeedsModel(t *testing.T) {
	p := NewPipeline(&stubVision{available: false}, model.NotesConfig{DocsDir: t.TempDir()})
	_, err := p.Process(context.Background(), []string{"whatever.png"})
	require.Error(t, err)
	require.True(t, errx.IsRemoteUnavailable(err))
}

func TestPipelineNoImages(t *testing.T) {
	p := NewPipeline(&stubVision{available: true}, model.NotesConfig{DocsDir: t.TempDir()})
	_, err := p.Process(context.Background(), nil)
	require.Error(t, err)
}
