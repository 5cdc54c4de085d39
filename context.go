package mapper

import (
	"context"
	"strconv"
)

// Paths holds the current absolute JSON Pointer scope for both the
// source and target sides of an evaluation (spec §3, invariant I1: both
// are always absolute).
type Paths struct {
	Source string
	Target string
}

// Context is the ambient evaluation frame threaded down the descriptor
// tree (spec §3). EvalContext is the name the pipeline and registry
// function signatures use for the same type.
type Context struct {
	Input  any
	Output map[string]any

	Source any
	Target any
	Paths  Paths

	Errors   *ErrorList
	Registry *Registry

	Mapping  *Descriptor
	Pairings []Pairing
}

// EvalContext is an alias for Context, used by Initializer/Transformer/
// Plugin signatures (spec §6) to keep those call sites read as "the
// pipeline's evaluation context" rather than "the mapper's state frame",
// even though it is the same type.
type EvalContext = Context

// ShiftChanges carries the optional overrides Shift accepts: a new
// source/target root, and/or a fan-out index to splice into the source
// path (spec §4.2's each-index insertion).
type ShiftChanges struct {
	Source    any
	HasSource bool
	Target    any
	HasTarget bool
	Index     *int
}

// NewRootContext builds the initial Context a Mapper.Map evaluation
// starts from: source/target default to input/output, paths default to
// the document root.
func NewRootContext(input any, output map[string]any, registry *Registry) *Context {
	return &Context{
		Input:    input,
		Output:   output,
		Source:   input,
		Target:   output,
		Paths:    Paths{Source: "/", Target: "/"},
		Errors:   NewErrorList(),
		Registry: registry,
	}
}

// Shift produces a child context for descriptor, implementing spec
// §4.3's five steps in order. goCtx is threaded through so step 2's
// seed-value computation (a mapping/each descriptor's own source/
// target/first/last/all field) can itself recurse through Read for
// first/last/all alternatives.
func Shift(goCtx context.Context, desc *Descriptor, parent *Context, changes *ShiftChanges) (*Context, error) {
	child := &Context{
		Input:    parent.Input,
		Output:   parent.Output,
		Errors:   parent.Errors,
		Registry: parent.Registry,
	}

	if changes != nil && changes.HasSource {
		child.Source = changes.Source
	} else if parent.Source != nil {
		child.Source = parent.Source
	} else {
		child.Source = parent.Input
	}

	if changes != nil && changes.HasTarget {
		child.Target = changes.Target
	} else if parent.Target != nil {
		child.Target = parent.Target
	} else {
		child.Target = parent.Output
	}

	sourcePath := parent.Paths.Source
	if sourcePath == "" {
		sourcePath = "/"
	}
	targetPath := parent.Paths.Target
	if targetPath == "" {
		targetPath = "/"
	}

	if desc != nil && desc.Kind == KindObject {
		if s, ok := desc.StringField("source"); ok {
			if changes != nil && changes.Index != nil {
				sourcePath = Resolve(sourcePath, strconv.Itoa(*changes.Index), s)
			} else {
				sourcePath = Resolve(sourcePath, s)
			}
		} else if changes != nil && changes.Index != nil {
			sourcePath = Resolve(sourcePath, strconv.Itoa(*changes.Index))
		}
		if t, ok := desc.StringField("target"); ok {
			targetPath = Resolve(targetPath, t)
		}
	} else if changes != nil && changes.Index != nil {
		sourcePath = Resolve(sourcePath, strconv.Itoa(*changes.Index))
	}
	child.Paths = Paths{Source: sourcePath, Target: targetPath}

	// A mapping/each descriptor's own source/target/first/last/all field
	// (if any) selects the seed value nested pairings and each's fan-out
	// operate on (spec §4.6 steps 2-3) — Nest never routes through
	// Evaluate's selectSource stage, so Shift must compute it here.
	// selectSource falls back to ectx.Source untouched when desc carries
	// none of those fields, so running it for every such descriptor is
	// safe. A descriptor that also carries "template" is skipped: Read
	// sends it through Evaluate, which runs selectSource itself.
	if desc != nil && desc.Kind == KindObject && desc.IsMapping() && !desc.Has("template") {
		seed, err := selectSource(goCtx, desc, child)
		if err != nil {
			return nil, err
		}
		child.Source = seed
	}

	// mapping is the descriptor Pairings() will be called on. An inline
	// mapping/each body (an object of target -> descriptor pairs) is
	// shaped identically to desc itself, so desc is reused directly; a
	// bare string names another registered mapping and is looked up,
	// since that registered descriptor already carries its own "mapping"
	// field for Pairings() to read.
	var mapping *Descriptor
	if desc != nil && desc.Kind == KindObject {
		if desc.Has("mapping") {
			if sub := desc.SubDescriptor("mapping"); sub.Kind == KindString {
				mapping = Deref(sub, parent.Registry.Mappings)
			} else {
				mapping = desc
			}
		} else if desc.Has("each") {
			if sub := desc.SubDescriptor("each"); sub.Kind == KindString {
				mapping = Deref(sub, parent.Registry.Mappings)
			} else {
				mapping = desc
			}
		}
	}
	child.Mapping = mapping
	if mapping != nil {
		child.Pairings = mapping.Pairings()
	}

	return child, nil
}
