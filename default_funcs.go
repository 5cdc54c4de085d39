package mapper

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// FunctionCall is a parsed call-syntax init value, e.g. "now(2006-01-02)"
// parses to {Name: "now", Args: ["2006-01-02"]}. Adapted into the init
// pipeline stage (spec §6) as an optional convenience layered on top of
// plain by-name initializer dispatch.
type FunctionCall struct {
	Name string
	Args []any
}

// parseFunctionCall parses input as "name(arg, arg, ...)" call syntax.
// Returns (nil, nil) when input does not look like a call at all.
func parseFunctionCall(input string) (*FunctionCall, error) {
	if len(input) < 3 || !strings.HasSuffix(input, ")") {
		return nil, nil
	}
	parenIndex := strings.IndexByte(input, '(')
	if parenIndex <= 0 {
		return nil, nil
	}

	name := strings.TrimSpace(input[:parenIndex])
	argsStr := strings.TrimSpace(input[parenIndex+1 : len(input)-1])

	var args []any
	if argsStr != "" {
		args = parseArgs(argsStr)
	}
	return &FunctionCall{Name: name, Args: args}, nil
}

// parseArgs splits a comma-separated argument list, stripping a matched
// pair of surrounding quotes from any string argument and otherwise
// trying int, then float, before falling back to a bare string.
func parseArgs(argsStr string) []any {
	parts := strings.Split(argsStr, ",")
	args := make([]any, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if len(part) >= 2 && part[0] == '"' && part[len(part)-1] == '"' {
			args = append(args, part[1:len(part)-1])
			continue
		}
		if i, err := strconv.ParseInt(part, 10, 64); err == nil {
			args = append(args, i)
			continue
		}
		if f, err := strconv.ParseFloat(part, 64); err == nil {
			args = append(args, f)
			continue
		}
		args = append(args, part)
	}
	return args
}

// DefaultNowFunc is a sample initializer a host may register under
// "now": it formats the current time, defaulting to RFC3339 or using
// options[0] as a time.Format layout. Matches the Initializer signature
// so it can be registered directly.
func DefaultNowFunc(_ context.Context, _ any, _ *EvalContext, options ...any) (any, error) {
	format := time.RFC3339
	if len(options) > 0 {
		if f, ok := options[0].(string); ok {
			format = f
		}
	}
	return time.Now().Format(format), nil
}
