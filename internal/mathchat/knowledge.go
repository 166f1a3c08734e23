package mathchat

import (
	"fmt"
	"strings"
)

// MathHelp enumerates the supported query shapes; it is the engine's only
// user-visible failure mode.
const MathHelp = "I can help with:\n" +
	"• Calculus: limits, derivatives, partials, integrals, series\n" +
	"• Algebra: solve equations/systems, simplify/factor/expand, inequalities\n" +
	"• Linear algebra: matrices (det, rank, inverse), eigenvalues/vectors\n" +
	"• Number theory: gcd/lcm, prime factorization, modular inverse\n" +
	"Examples:\n" +
	"- derivative of sin(x)^2\n" +
	"- integrate x^2 from 0 to 1\n" +
	"- limit (1+1/n)^n as n->oo\n" +
	"- solve {x+y=3, x-y=1}\n" +
	"- simplify (x^2 - 1)/(x-1)\n" +
	"- matrix eigenvalues [[1,2],[3,4]]\n"

type conceptNote struct {
	key  string
	text string
}

// offlineKB answers concept questions without the collaborator. Entries
// match by substring in priority order.
var offlineKB = []conceptNote{
	{"derivative", `
**Derivative (intuition):**
- Measures *instantaneous rate of change* (slope of the tangent line).
- Definition: \( f'(x)=\lim_{h\to 0}\frac{f(x+h)-f(x)}{h} \).
- Rules: \( \frac{d}{dx}x^n = nx^{n-1}\), \( (\sin x)' = \cos x\), \( (e^x)'=e^x\).
- Example: \( f(x)=x^2 \Rightarrow f'(x)=2x\).
`},
	{"integral", `
**Integral (intuition):**
- Accumulated quantity / signed area under curve.
- Indefinite: \( \int f(x)\,dx = F(x)+C\) where \(F' = f\).
- Definite: \( \int_a^b f(x)\,dx = F(b)-F(a)\).
- Example: \( \int x^2 dx = \frac{x^3}{3}+C\).
`},
	{"limit", `
**Limit (intuition):**
- What \(f(x)\) approaches as \(x\) approaches a value.
- Notation: \( \lim_{x\to a} f(x) \).
- Example: \( \lim_{n\to\infty}\left(1+\frac{1}{n}\right)^n=e\).
`},
	{"eigenvalues", `
**Eigenvalues / Eigenvectors:**
- \(A v = \lambda v\) with \(v\neq 0\). \(v\): eigenvector, \(\lambda\): eigenvalue.
- Solve \(\det(A-\lambda I)=0\) for \(\lambda\); then solve \((A-\lambda I)v=0\) for \(v\).
- Example \( \begin{bmatrix}1&2\\3&4\end{bmatrix}\): \(\lambda=\frac{5\pm\sqrt{33}}{2}\).
`},
	{"rank", `
**Matrix Rank:**
- Number of linearly independent rows/columns.
- Equals pivot count in row-reduced echelon form.
- Dimension of the image of the linear map.
`},
	{"complex numbers", `
**Complex Numbers:**
- Extend the reals by \(i\) where \(i^2=-1\).
- General form \(z=a+bi\) with \(a,b\in\mathbb{R}\); conjugate \(\overline z=a-bi\).
- Magnitude \(|z|=\sqrt{a^2+b^2}\); argument \(\arg z\) is the angle in the plane.
- Multiplication adds arguments and multiplies magnitudes.
- Example: \((1+i)(2-i)=3+i\).
`},
}

// LookupConcept finds an offline note whose key appears in the topic.
func LookupConcept(topic string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(topic))
	for _, note := range offlineKB {
		if key != "" && strings.Contains(key, note.key) {
			return note.text, true
		}
	}
	return "", false
}

func conceptUnavailable(topic string) string {
	return fmt.Sprintf("Concept explanation unavailable offline for '%s'. "+
		"Enable LLM API key to get a detailed explanation.", topic)
}
