package salve

import (
	"fmt"

	"github.com/raffazizzi/salve/errors"
	"github.com/raffazizzi/salve/nsresolve"
	"github.com/raffazizzi/salve/rngevent"
	"github.com/raffazizzi/salve/walker"
)

// ValidateOption configures a single Validator instance at NewWalker time.
type ValidateOption interface{ apply(*validateOptions) }

type validateOptions struct {
	initialContext map[string]string
}

type validateOptionFunc func(*validateOptions)

func (f validateOptionFunc) apply(cfg *validateOptions) {
	if cfg == nil {
		return
	}
	f(cfg)
}

// WithInitialContext seeds the namespace-prefix context with a mapping
// that is in scope before any element of the document is seen (analogous
// to bindings inherited from an enclosing document, e.g. in an entity
// reference or fragment-validation scenario). The mapping is pushed as the
// outermost frame, so a later xmlns declaration on the root element still
// shadows it.
func WithInitialContext(mapping map[string]string) ValidateOption {
	return validateOptionFunc(func(cfg *validateOptions) {
		cfg.initialContext = mapping
	})
}

func applyValidateOptions(opts []ValidateOption) validateOptions {
	var cfg validateOptions
	for _, o := range opts {
		if o != nil {
			o.apply(&cfg)
		}
	}
	return cfg
}

// Result mirrors walker.Result: the three-way outcome of dispatching one
// event or an end check to a Validator.
type Result = walker.Result

const (
	// Ok means the event or end check succeeded without error.
	Ok Result = walker.Ok
	// Errors means the event or end check failed; the walker has entered
	// a local recovery state and validation can continue.
	Errors Result = walker.Errors
)

// Validator drives one document's worth of validation against a compiled
// Grammar: a root walker, the live namespace-prefix context it consults,
// and the running log of every error seen in the session (spec.md §7 says
// a single dispatch can carry "one or more" errors; Errors accumulates
// across the whole document so a caller can report a complete list at the
// end instead of one error per call). A Validator is not safe for
// concurrent use; Clone it to advance two branches independently.
type Validator struct {
	grammar *Grammar
	ctx     *nsresolve.Context
	root    walker.Walker
	errs    errors.ValidationList
}

// NewWalker builds a Validator for one document against the compiled
// grammar. The name mirrors the teacher's own walker-construction
// vocabulary (spec.md §6.3 "grammar.newWalker()").
func (g *Grammar) NewWalker(opts ...ValidateOption) (*Validator, error) {
	if g == nil {
		return nil, schemaNotLoadedError()
	}
	cfg := applyValidateOptions(opts)

	ctx := nsresolve.New()
	if cfg.initialContext != nil {
		ctx.EnterContextWithMapping(cfg.initialContext)
	}

	env := &walker.Env{
		Arena:    g.arena,
		Library:  g.library,
		Elements: g.prepared.ElementsByName,
		Ctx:      ctx,
	}
	root, err := walker.NewWalker(env, g.start)
	if err != nil {
		return nil, fmt.Errorf("create walker: %w", err)
	}
	return &Validator{grammar: g, ctx: ctx, root: root}, nil
}

// Possible returns the set of events legal to fire next.
func (v *Validator) Possible() *rngevent.Set {
	return v.root.Possible()
}

// FireEvent dispatches in to the root walker, expanding compact events
// into their primitive sequence first (spec.md §4.2). A NoMatch from the
// underlying walker tree (for example a root start tag whose name the
// grammar does not admit, or an event fired out of protocol order) is
// itself surfaced as an Errors outcome with a synthesized diagnostic, so
// FireEvent's public result is always one of Ok or Errors. Every error produced is both returned and appended to the
// session's running log (see Errors()).
func (v *Validator) FireEvent(in rngevent.Input) (Result, errors.ValidationList) {
	var all errors.ValidationList
	worst := Ok
	for _, e := range in.Expand() {
		res, errs := v.root.FireEvent(e)
		if res == walker.NoMatch {
			res = walker.Errors
			errs = errors.ValidationList{unexpectedEventError(e)}
		}
		if len(errs) > 0 {
			all = append(all, errs...)
		}
		if res == walker.Errors {
			worst = Errors
		}
	}
	if len(all) > 0 {
		v.errs = append(v.errs, all...)
	}
	return worst, all
}

// CanEnd reports whether the document could legally end right now (no
// start tag open, no required content left at the root).
func (v *Validator) CanEnd() bool {
	return v.root.CanEnd(false)
}

// End asserts that the document is complete. Call it once, after the
// final endTag of the root element has been fired.
func (v *Validator) End() (Result, errors.ValidationList) {
	res, errs := v.root.End(false)
	if len(errs) > 0 {
		v.errs = append(v.errs, errs...)
	}
	return res, errs
}

// Errors returns every validation error accumulated so far this session,
// across every FireEvent and End call (spec.md §7, supplemented per
// SPEC_FULL.md: "a caller driving the whole document can report a full
// error list at the end").
func (v *Validator) Errors() errors.ValidationList {
	return v.errs
}

// EnterContext and LeaveContext wrap the live namespace-prefix stack that
// Value and Data walkers consult; the caller must enter a context before
// firing an element's enterStartTag and leave it only after the matching
// endTag (nsresolve's contract).
func (v *Validator) EnterContext()                              { v.ctx.EnterContext() }
func (v *Validator) EnterContextWithMapping(m map[string]string) { v.ctx.EnterContextWithMapping(m) }
func (v *Validator) DefinePrefix(prefix, uri string)             { v.ctx.DefinePrefix(prefix, uri) }
func (v *Validator) LeaveContext()                               { v.ctx.LeaveContext() }

// Clone returns an independent copy of the validator: its own walker tree
// (memo-deduplicated per spec.md §9) and its own namespace context
// snapshot, so the two can advance through different continuations of the
// event stream without interfering with each other. The accumulated error
// log is copied, not shared.
func (v *Validator) Clone() *Validator {
	newCtx := v.ctx.Clone()
	memo := walker.NewMemo()
	memo.Env = &walker.Env{
		Arena:    v.grammar.arena,
		Library:  v.grammar.library,
		Elements: v.grammar.prepared.ElementsByName,
		Ctx:      newCtx,
	}
	cp := &Validator{
		grammar: v.grammar,
		ctx:     newCtx,
		root:    v.root.Clone(memo),
	}
	cp.errs = append(errors.ValidationList(nil), v.errs...)
	return cp
}

func unexpectedEventError(e rngevent.Input) errors.Validation {
	switch e.Kind {
	case rngevent.EnterStartTag:
		return errors.NewValidationf(errors.ErrUnexpectedElement, "", "unexpected element {%s}%s", e.URI, e.Local)
	case rngevent.AttributeName:
		return errors.NewValidationf(errors.ErrUnexpectedAttribute, "", "unexpected attribute {%s}%s", e.URI, e.Local)
	case rngevent.Text:
		return errors.NewValidation(errors.ErrUnexpectedText, "unexpected text content", "")
	case rngevent.EndTag:
		return errors.NewValidationf(errors.ErrUnexpectedEndTag, "", "unexpected end of element {%s}%s", e.URI, e.Local)
	default:
		// LeaveStartTag and AttributeValue reaching here mean the caller
		// fired an event out of protocol order (e.g. a value with no
		// preceding name); malformed event streams are a Non-goal, but the
		// walker tree still needs some ErrorCode to report.
		return errors.NewValidation(errors.ErrIncompleteContent, "event fired out of sequence", "")
	}
}
