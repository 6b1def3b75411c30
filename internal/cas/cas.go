// Package cas provides the symbolic calculus/algebra manipulator:
// simplification, differentiation, integration, and equation solving. It is
// an independent string-rewriting utility invoked by the solver dispatcher,
// not part of proof verification.
package cas

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"axion/internal/logging"
)

// rewriteRule is a single pattern -> replacement simplification.
type rewriteRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Manipulator rewrites expressions with a fixed algebraic rule table.
type Manipulator struct {
	simplificationRules []rewriteRule
}

// New returns a manipulator with the standard simplification rules.
func New() *Manipulator {
	rules := []struct{ pattern, replacement string }{
		{`x \+ 0`, "x"},
		{`0 \+ x`, "x"},
		{`x \* 1`, "x"},
		{`1 \* x`, "x"},
		{`x \* 0`, "0"},
		{`0 \* x`, "0"},
		{`x \- x`, "0"},
		{`x / x`, "1"},
		{`x \^ 0`, "1"},
		{`x \^ 1`, "x"},
	}
	m := &Manipulator{}
	for _, r := range rules {
		m.simplificationRules = append(m.simplificationRules, rewriteRule{
			pattern:     regexp.MustCompile(r.pattern),
			replacement: r.replacement,
		})
	}
	return m
}

// maxSimplifyIterations caps the rewrite loop; the rule table has no cycle
// detection.
const maxSimplifyIterations = 100

// Simplify applies the rule table iteratively until a fixed point.
func (m *Manipulator) Simplify(expr string) string {
	result := expr
	for i := 0; i < maxSimplifyIterations; i++ {
		changed := false
		for _, rule := range m.simplificationRules {
			next := rule.pattern.ReplaceAllString(result, rule.replacement)
			if next != result {
				result = next
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	logging.CASDebug("simplify(%q) = %q", expr, result)
	return result
}

// Differentiate computes the symbolic derivative of expr with respect to
// variable. Unrecognized shapes fall back to the symbolic notation
// d/d<var>[expr].
func (m *Manipulator) Differentiate(expr, variable string) string {
	expr = strings.TrimSpace(expr)
	if variable == "" {
		variable = "x"
	}

	// Constant rule.
	if !strings.Contains(expr, variable) {
		return "0"
	}

	// Variable rule: d/dx[x] = 1.
	if expr == variable {
		return "1"
	}

	// Power rule: d/dx[x^n] = n*x^(n-1).
	powerPattern := regexp.MustCompile(`^` + regexp.QuoteMeta(variable) + `\^(\d+)$`)
	if match := powerPattern.FindStringSubmatch(expr); match != nil {
		n, _ := strconv.Atoi(match[1])
		switch n {
		case 0:
			return "0"
		case 1:
			return "1"
		case 2:
			return "2*" + variable
		default:
			return fmt.Sprintf("%d*%s^%d", n, variable, n-1)
		}
	}

	// Polynomial terms: d/dx[c*x^n].
	polyPattern := regexp.MustCompile(`^(\d+)\*` + regexp.QuoteMeta(variable) + `\^(\d+)$`)
	if match := polyPattern.FindStringSubmatch(expr); match != nil {
		c, _ := strconv.Atoi(match[1])
		n, _ := strconv.Atoi(match[2])
		switch n {
		case 0:
			return "0"
		case 1:
			return strconv.Itoa(c)
		case 2:
			return fmt.Sprintf("%d*%s", c*n, variable)
		default:
			return fmt.Sprintf("%d*%s^%d", c*n, variable, n-1)
		}
	}

	// Sum rule: d/dx[f + g] = f' + g'.
	if strings.Contains(expr, "+") && !isInsideParens(expr, '+') {
		parts := strings.Split(expr, "+")
		derivatives := make([]string, len(parts))
		for i, part := range parts {
			derivatives[i] = m.Differentiate(strings.TrimSpace(part), variable)
		}
		return strings.Join(derivatives, " + ")
	}

	// Product rule: d/dx[f*g] = f'*g + f*g'.
	if strings.Contains(expr, "*") && !isInsideParens(expr, '*') {
		parts := strings.SplitN(expr, "*", 2)
		if len(parts) == 2 {
			f, g := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
			fPrime := m.Differentiate(f, variable)
			gPrime := m.Differentiate(g, variable)
			return fmt.Sprintf("(%s)*(%s) + (%s)*(%s)", fPrime, g, f, gPrime)
		}
	}

	return fmt.Sprintf("d/d%s[%s]", variable, expr)
}

// Integrate computes the symbolic antiderivative of expr with respect to
// variable. Unrecognized shapes fall back to ∫expr d<var>.
func (m *Manipulator) Integrate(expr, variable string) string {
	expr = strings.TrimSpace(expr)
	if variable == "" {
		variable = "x"
	}

	// Constant rule.
	if !strings.Contains(expr, variable) {
		return fmt.Sprintf("%s*%s", expr, variable)
	}

	// Variable rule: ∫x dx = x^2/2.
	if expr == variable {
		return fmt.Sprintf("%s^2/2", variable)
	}

	// Power rule: ∫x^n dx = x^(n+1)/(n+1).
	powerPattern := regexp.MustCompile(`^` + regexp.QuoteMeta(variable) + `\^(\d+)$`)
	if match := powerPattern.FindStringSubmatch(expr); match != nil {
		n, _ := strconv.Atoi(match[1])
		return fmt.Sprintf("%s^%d/%d", variable, n+1, n+1)
	}

	// Polynomial terms: ∫c*x^n dx.
	polyPattern := regexp.MustCompile(`^(\d+)\*` + regexp.QuoteMeta(variable) + `\^(\d+)$`)
	if match := polyPattern.FindStringSubmatch(expr); match != nil {
		c, _ := strconv.Atoi(match[1])
		n, _ := strconv.Atoi(match[2])
		return fmt.Sprintf("%d*%s^%d/%d", c, variable, n+1, n+1)
	}

	// Linearity: ∫(f + g) dx = ∫f dx + ∫g dx.
	if strings.Contains(expr, "+") {
		parts := strings.Split(expr, "+")
		integrals := make([]string, len(parts))
		for i, part := range parts {
			integrals[i] = m.Integrate(strings.TrimSpace(part), variable)
		}
		return strings.Join(integrals, " + ")
	}

	return fmt.Sprintf("∫%s d%s", expr, variable)
}

// SolveEquation solves simple linear equations of the form a*x + b = c.
// Unsolvable or unrecognized equations yield no solutions.
func (m *Manipulator) SolveEquation(equation, variable string) []string {
	if variable == "" {
		variable = "x"
	}
	parts := strings.Split(equation, "=")
	if len(parts) != 2 {
		return nil
	}
	lhs, rhs := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])

	pattern := regexp.MustCompile(`^(\d*)\*?` + regexp.QuoteMeta(variable) + `\s*\+\s*(\d+)\s*`)
	match := pattern.FindStringSubmatch(lhs)
	if match == nil {
		return []string{fmt.Sprintf("Solution for %s not implemented", equation)}
	}

	a := 1
	if match[1] != "" {
		a, _ = strconv.Atoi(match[1])
	}
	b, _ := strconv.Atoi(match[2])
	c, err := strconv.Atoi(rhs)
	if err != nil {
		return nil
	}
	if a == 0 {
		return nil
	}

	solution := float64(c-b) / float64(a)
	return []string{fmt.Sprintf("%s = %g", variable, solution)}
}

// isInsideParens reports whether every occurrence of op sits inside
// parentheses. Single-byte operators only.
func isInsideParens(expr string, op byte) bool {
	depth := 0
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '(':
			depth++
		case ')':
			depth--
		case op:
			if depth == 0 {
				return false
			}
		}
	}
	return true
}
