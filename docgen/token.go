package docgen

import "strings"

// Placeholder token delimiters. Fixed by the host platform's template
// dialect; templates carry them verbatim, e.g. "[#~input:ORDERNO#]".
const (
	tokenStart = "[#"
	tokenEnd   = "#]"
)

// ExpressionKind tags the parsed placeholder expression variants.
type ExpressionKind string

const (
	ExprInput     ExpressionKind = "input"
	ExprConfig    ExpressionKind = "config"
	ExprTranslate ExpressionKind = "translate"
	ExprFormula   ExpressionKind = "formula"
	ExprData      ExpressionKind = "data"
	ExprFile      ExpressionKind = "file"
	ExprNamed     ExpressionKind = "named"
	ExprInvalid   ExpressionKind = "invalid"
)

// Expression is a parsed placeholder expression.
type Expression struct {
	Kind        ExpressionKind
	Column      string
	App         string
	Key         string
	Formula     string
	Placeholder string
	Aggregate   AggregateKind
}

type segment struct {
	literal string
	expr    Expression
	token   bool
}

// scanTemplate splits a template into literal segments and placeholder
// tokens. An unterminated start marker consumes the remainder of the
// template and yields an invalid expression, which renders as empty.
func scanTemplate(tpl string) []segment {
	var segments []segment
	for len(tpl) > 0 {
		start := strings.Index(tpl, tokenStart)
		if start < 0 {
			segments = append(segments, segment{literal: tpl})
			break
		}
		if start > 0 {
			segments = append(segments, segment{literal: tpl[:start]})
		}
		rest := tpl[start+len(tokenStart):]
		end := strings.Index(rest, tokenEnd)
		if end < 0 {
			segments = append(segments, segment{token: true, expr: Expression{Kind: ExprInvalid}})
			break
		}
		segments = append(segments, segment{token: true, expr: parseExpression(rest[:end])})
		tpl = rest[end+len(tokenEnd):]
	}
	return segments
}

// parseExpression parses the body of a placeholder token.
func parseExpression(body string) Expression {
	body = strings.TrimSpace(body)
	if body == "" {
		return Expression{Kind: ExprInvalid}
	}

	if !strings.HasPrefix(body, "~") {
		return Expression{Kind: ExprNamed, Placeholder: body}
	}

	ns, rest, ok := strings.Cut(body[1:], ":")
	if !ok {
		return Expression{Kind: ExprInvalid}
	}

	switch ns {
	case "input":
		if rest == "" {
			return Expression{Kind: ExprInvalid}
		}
		return Expression{Kind: ExprInput, Column: rest}
	case "config", "translate":
		app, key, ok := strings.Cut(rest, ".")
		if !ok || app == "" || key == "" {
			return Expression{Kind: ExprInvalid}
		}
		kind := ExprConfig
		if ns == "translate" {
			kind = ExprTranslate
		}
		return Expression{Kind: kind, App: app, Key: key}
	case "formula":
		if strings.TrimSpace(rest) == "" {
			return Expression{Kind: ExprInvalid}
		}
		return Expression{Kind: ExprFormula, Formula: rest}
	case "file":
		if rest == "" {
			return Expression{Kind: ExprInvalid}
		}
		return Expression{Kind: ExprFile, Key: rest}
	case "data":
		return parseDataExpression(rest)
	default:
		return Expression{Kind: ExprInvalid}
	}
}

// parseDataExpression parses the data namespace forms: COL and COL.KIND
// address the current placeholder row, NAME.COL and NAME.COL.KIND address a
// placeholder in the enclosing scope chain. A trailing segment is an
// aggregate modifier only when it names a known kind.
func parseDataExpression(rest string) Expression {
	parts := strings.Split(rest, ".")
	for _, part := range parts {
		if part == "" {
			return Expression{Kind: ExprInvalid}
		}
	}

	expr := Expression{Kind: ExprData}
	if kind, ok := ParseAggregateKind(parts[len(parts)-1]); ok && len(parts) >= 2 {
		expr.Aggregate = kind
		parts = parts[:len(parts)-1]
	}

	switch len(parts) {
	case 0:
		return Expression{Kind: ExprInvalid}
	case 1:
		expr.Column = parts[0]
	default:
		expr.Placeholder = parts[0]
		expr.Column = strings.Join(parts[1:], ".")
	}
	return expr
}

// referencedPlaceholders collects the data placeholder names a template
// refers to, either as named blocks or through the data namespace.
func referencedPlaceholders(tpl string) map[string]bool {
	names := make(map[string]bool)
	for _, seg := range scanTemplate(tpl) {
		if !seg.token {
			continue
		}
		switch seg.expr.Kind {
		case ExprNamed:
			names[seg.expr.Placeholder] = true
		case ExprData:
			if seg.expr.Placeholder != "" {
				names[seg.expr.Placeholder] = true
			}
		}
	}
	return names
}

// hasRowScopedTokens reports whether a template references values that vary
// per input row, which implies one output unit per row.
func hasRowScopedTokens(tpl string) bool {
	for _, seg := range scanTemplate(tpl) {
		if !seg.token {
			continue
		}
		switch seg.expr.Kind {
		case ExprInput, ExprFormula, ExprData:
			return true
		}
	}
	return false
}
