package notes

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	logx "github.com/lectura/server/pkg/logger"
)

// StripFences removes a markdown code fence the model sometimes wraps
// around the document despite being told not to.
func StripFences(src string) string {
	s := strings.TrimSpace(src)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.Trim(s, "`")
	if strings.HasPrefix(s, "latex") {
		s = strings.TrimSpace(s[len("latex"):])
	}
	s = strings.TrimPrefix(s, "\n")
	return s
}

// RepairDocument makes the source compilable: wraps fragments in a minimal
// article preamble, injects the ams packages when absent, and closes or
// opens the document environment as needed.
func RepairDocument(src string) string {
	if !strings.Contains(src, `\documentclass`) {
		return "\\documentclass{article}\n\\usepackage{amsmath}\n\\usepackage{amssymb}\n" +
			"\\begin{document}\n" + src + "\n\\end{document}"
	}
	if !strings.Contains(src, `\usepackage{amssymb}`) {
		switch {
		case strings.Contains(src, `\usepackage{amsmath}`):
			src = strings.Replace(src, `\usepackage{amsmath}`,
				"\\usepackage{amsmath}\n\\usepackage{amssymb}", 1)
		case strings.Contains(src, `\begin{document}`):
			src = strings.Replace(src, `\begin{document}`,
				"\\usepackage{amsmath}\n\\usepackage{amssymb}\n\\begin{document}", 1)
		default:
			if nl := strings.Index(src[strings.Index(src, `\documentclass`):], "\n"); nl != -1 {
				pos := strings.Index(src, `\documentclass`) + nl + 1
				src = src[:pos] + "\\usepackage{amsmath}\n\\usepackage{amssymb}\n" + src[pos:]
			}
		}
	}
	hasBegin := strings.Contains(src, `\begin{document}`)
	hasEnd := strings.Contains(src, `\end{document}`)
	switch {
	case !hasBegin && hasEnd:
		src = strings.Replace(src, `\end{document}`, "\\begin{document}\n\\end{document}", 1)
	case hasBegin && !hasEnd:
		src += "\n\\end{document}"
	}
	return src
}

// CompileError carries the interesting lines harvested from the TeX log.
type CompileError struct {
	Lines []string
	Cause error
}

func (e *CompileError) Error() string {
	if len(e.Lines) > 0 {
		return "latex compilation failed:\n" + strings.Join(e.Lines, "\n")
	}
	if e.Cause != nil {
		return "latex compilation failed: " + e.Cause.Error()
	}
	return "latex compilation failed"
}

func (e *CompileError) Unwrap() error { return e.Cause }

// Compile builds <noteName>.tex inside dir into a PDF. latexmk is preferred;
// when it is not installed two pdflatex passes run instead. A machine
// without any TeX toolchain yields ("", nil): the caller still has the
// source, which is the useful artifact.
func Compile(ctx context.Context, dir, noteName string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	texFile := noteName + ".tex"
	cmd := exec.CommandContext(runCtx, "latexmk", "-pdf", "-interaction=nonstopmode", texFile, "-outdir="+dir)
	cmd.Dir = dir
	err := cmd.Run()
	if err != nil && isMissingBinary(err) {
		logx.Warn().Msg("latexmk not found, trying pdflatex")
		return compilePDFLatex(runCtx, dir, texFile, noteName)
	}
	if pdf := findPDF(dir, noteName); pdf != "" {
		return pdf, nil
	}
	return "", harvestLog(dir, noteName, err)
}

func compilePDFLatex(ctx context.Context, dir, texFile, noteName string) (string, error) {
	var err error
	// Two passes, for references.
	for i := 0; i < 2; i++ {
		cmd := exec.CommandContext(ctx, "pdflatex", "-interaction=nonstopmode", texFile)
		cmd.Dir = dir
		if err = cmd.Run(); err != nil {
			break
		}
	}
	if err != nil && isMissingBinary(err) {
		logx.Warn().Msg("no TeX toolchain installed, skipping PDF generation")
		return "", nil
	}
	if pdf := findPDF(dir, noteName); pdf != "" {
		return pdf, nil
	}
	return "", harvestLog(dir, noteName, err)
}

func isMissingBinary(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}

// findPDF checks the output dir and the nested dir latexmk sometimes
// creates when -outdir repeats the working directory.
func findPDF(dir, noteName string) string {
	candidates := []string{
		filepath.Join(dir, noteName+".pdf"),
		filepath.Join(dir, filepath.Base(dir), noteName+".pdf"),
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// harvestLog pulls the trailing Error/Fatal lines out of the TeX log so the
// failure is actionable without opening the log by hand.
func harvestLog(dir, noteName string, cause error) error {
	ce := &CompileError{Cause: cause}
	for _, logPath := range []string{
		filepath.Join(dir, noteName+".log"),
		filepath.Join(dir, filepath.Base(dir), noteName+".log"),
	} {
		data, err := os.ReadFile(logPath)
		if err != nil {
			continue
		}
		var bad []string
		for _, line := range strings.Split(string(data), "\n") {
			if strings.Contains(line, "Error") || strings.Contains(line, "Fatal") {
				bad = append(bad, line)
			}
		}
		if len(bad) > 5 {
			bad = bad[len(bad)-5:]
		}
		if len(bad) > 0 {
			ce.Lines = bad
			break
		}
	}
	return ce
}
