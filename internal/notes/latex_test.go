package notes

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	doc := "\\documentclass{article}\n\\begin{document}\nx\n\\end{document}"

	require.Equal(t, doc, StripFences(doc))
	require.Equal(t, doc, StripFences("```latex\n"+doc+"\n```"))
	require.Equal(t, doc, StripFences("```\n"+doc+"\n```"))
	require.Equal(t, doc, StripFences("  "+doc+"\n"))
}

func TestRepairDocumentWrapsFragment(t *testing.T) {
	got := RepairDocument(`$x^2$`)
	require.True(t, strings.HasPrefix(got, `\documentclass{article}`))
	require.Contains(t, got, `\usepackage{amssymb}`)
	require.Contains(t, got, `\begin{document}`)
	require.True(t, strings.HasSuffix(got, `\end{document}`))
}

func TestRepairDocumentInjectsAmssymb(t *testing.T) {
	src := "\\documentclass{article}\n\\usepackage{amsmath}\n\\begin{document}\nx\n\\end{document}"
	got := RepairDocument(src)
	require.Contains(t, got, "\\usepackage{amsmath}\n\\usepackage{amssymb}")

	// No amsmath either: injection goes before begin{document}.
	src = "\\documentclass{article}\n\\begin{document}\nx\n\\end{document}"
	got = RepairDocument(src)
	require.Contains(t, got, "\\usepackage{amssymb}\n\\begin{document}")

	// Neither package nor document environment yet: after the class line.
	src = "\\documentclass{article}\nx"
	got = RepairDocument(src)
	require.Contains(t, got, "\\documentclass{article}\n\\usepackage{amsmath}\n\\usepackage{amssymb}")
}

func TestRepairDocumentClosesDocument(t *testing.T) {
	src := "\\documentclass{article}\n\\usepackage{amssymb}\n\\begin{document}\nx"
	got := RepairDocument(src)
	require.True(t, strings.HasSuffix(got, `\end{document}`))

	src = "\\documentclass{article}\n\\usepackage{amssymb}\nx\n\\end{document}"
	got = RepairDocument(src)
	require.Contains(t, got, "\\begin{document}\n\\end{document}")
}

func TestCompileError(t *testing.T) {
	cause := errors.New("exit status 1")
	err := &CompileError{Lines: []string{"! Undefined control sequence."}, Cause: cause}
	require.Contains(t, err.Error(), "Undefined control sequence")
	require.ErrorIs(t, err, cause)

	bare := &CompileError{Cause: cause}
	require.Contains(t, bare.Error(), "exit status 1")
}
