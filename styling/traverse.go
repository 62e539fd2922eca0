package styling

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"context"
	"sync"

	"github.com/npillmayer/restyle/cssom"
	"github.com/npillmayer/restyle/damage"
	"github.com/npillmayer/restyle/dom"
	"github.com/npillmayer/restyle/rule"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Styler drives styling passes over document trees. It owns the rule
// store and recycles per-worker state across passes. A Styler may be
// reused for any number of passes over any number of trees, but passes
// do not run concurrently with each other.
type Styler struct {
	stylist *cssom.Stylist
	rules   *rule.Tree
	host    Host
	opts    Options

	locals sync.Pool

	flagMu   sync.Mutex
	deferred []map[dom.Element]dom.SelectorFlags
}

// NewStyler creates a styler for the given stylesheets. A nil host gets
// the ValueDiffHost default.
func NewStyler(stylist *cssom.Stylist, host Host, opts Options) *Styler {
	if host == nil {
		host = ValueDiffHost{}
	}
	sty := &Styler{
		stylist: stylist,
		rules:   rule.NewTree(),
		host:    host,
		opts:    opts,
	}
	sty.locals.New = func() interface{} {
		return NewThreadLocal()
	}
	return sty
}

// Rules exposes the styler's rule store, e.g. for base-style queries via
// GetBaseStyle.
func (sty *Styler) Rules() *rule.Tree {
	return sty.rules
}

// StyleTree styles root and all its descendants. Parents are always
// styled before their children; disjoint subtrees may be styled by
// different goroutines, bounded by Options.Workers. Selector flags for
// ancestors collected during the parallel phase are flushed sequentially
// before StyleTree returns.
//
// ctx cancellation stops the traversal between elements; a started
// element is always styled to completion.
func (sty *Styler) StyleTree(ctx context.Context, root dom.Element, flags TraversalFlags) error {
	shared := &SharedContext{
		Stylist: sty.stylist,
		Rules:   sty.rules,
		Host:    sty.host,
		Flags:   flags,
		Options: sty.opts,
	}
	workers := sty.opts.Workers
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(workers))
	job := &styleJob{styler: sty, shared: shared, group: g, sem: sem}
	if err := sem.Acquire(gctx, 1); err != nil {
		return err
	}
	g.Go(func() error {
		defer sem.Release(1)
		return job.runSubtree(gctx, root)
	})
	err := g.Wait()
	sty.flushDeferredFlags()
	return err
}

// styleJob is the state of one StyleTree invocation.
type styleJob struct {
	styler *Styler
	shared *SharedContext
	group  *errgroup.Group
	sem    *semaphore.Weighted
}

// runSubtree styles one subtree with its own worker state. The fresh
// (reset) ThreadLocal means the sharing cache never carries entries
// across a work boundary, by construction.
func (job *styleJob) runSubtree(ctx context.Context, el dom.Element) error {
	tl := job.styler.locals.Get().(*ThreadLocal)
	tl.Reset()
	tl.bloom.RebuildFor(el)
	c := &Context{Shared: job.shared, Local: tl}
	err := job.styleRecursive(ctx, c, el)
	job.styler.collectDeferred(tl)
	job.styler.locals.Put(tl)
	return err
}

func (job *styleJob) styleRecursive(ctx context.Context, c *Context, el dom.Element) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	StyleElement(c, el)
	if values := primaryValuesOf(el); values == nil || values.IsDisplayNone() {
		// display:none subtrees are not rendered; their children keep
		// whatever styles they have
		return nil
	}
	c.Local.bloom.Push(el)
	defer c.Local.bloom.Pop()
	var firstErr error
	el.EachChild(func(ch dom.Element) bool {
		if job.sem.TryAcquire(1) {
			ch := ch
			job.group.Go(func() error {
				defer job.sem.Release(1)
				return job.runSubtree(ctx, ch)
			})
			return true
		}
		if err := job.styleRecursive(ctx, c, ch); err != nil {
			firstErr = err
			return false
		}
		return true
	})
	return firstErr
}

// StyleElement resolves one element's style: by rule replacement on an
// animation-only pass, by donation from the sharing cache, or by full
// matching and cascading. The element's parent must already be styled.
// Returns whether the element's children must re-cascade.
func StyleElement(c *Context, el dom.Element) ChildCascadeRequirement {
	c.Local.beginElement(el)
	data := el.EnsureData()
	if data.HasStyles() {
		rd := data.EnsureRestyle()
		rd.ImportantSnapshot = data.Styles().Primary.Rules
	}
	if c.Shared.Flags.Contains(AnimationOnly) {
		return styleForAnimationPass(c, el)
	}
	if !data.HasStyles() || data.Styles().Primary.Values == nil {
		// first-time styling may use the cache
		if req, shared := ShareStyleIfPossible(c, el); shared {
			return req
		}
	}
	res, relations := MatchPrimary(c, el)
	MatchPseudos(c, el)
	req := CascadePrimary(c, el)
	data.Styles().EachPseudo(func(pseudo dom.PseudoKind, _ *dom.ComputedStyle) {
		CascadeEagerPseudo(c, el, pseudo)
	})
	if res.ImportantRulesChanged {
		// animation effects override everything but !important rules;
		// those changed, so effects must be re-evaluated
		values := data.Styles().Primary.Values
		data.Styles().Primary.Values = c.Shared.Host.UpdateAnimations(
			el, dom.NoPseudo, values, values, data.Styles().Primary.Rules)
	}
	hasPseudos := false
	data.Styles().EachPseudo(func(dom.PseudoKind, *dom.ComputedStyle) { hasPseudos = true })
	c.Local.sharing.InsertIfPossible(el, data.Styles().Primary.Values, relations, hasPseudos)
	return req
}

// styleForAnimationPass swaps only the animation- and transition-origin
// rules and re-cascades if they, or the important rules above them,
// actually changed. Elements never styled before are skipped; a full
// pass has to reach them first.
func styleForAnimationPass(c *Context, el dom.Element) ChildCascadeRequirement {
	data := el.Data()
	if !data.HasStyles() {
		return MustCascade
	}
	changed := ReplaceRules(c, el, ReplaceCSSAnimations|ReplaceCSSTransitions)
	if !changed.Any() && !data.ImportantRulesAreDifferent() {
		return CanSkipCascade
	}
	req := CascadePrimary(c, el)
	data.Styles().EachPseudo(func(pseudo dom.PseudoKind, _ *dom.ComputedStyle) {
		CascadeEagerPseudo(c, el, pseudo)
	})
	return req
}

func (sty *Styler) collectDeferred(tl *ThreadLocal) {
	m := tl.takeDeferredFlags()
	if m == nil {
		return
	}
	sty.flagMu.Lock()
	sty.deferred = append(sty.deferred, m)
	sty.flagMu.Unlock()
}

// flushDeferredFlags applies the ancestor selector flags collected by
// all workers. Runs strictly sequentially, after the parallel phase.
func (sty *Styler) flushDeferredFlags() {
	sty.flagMu.Lock()
	maps := sty.deferred
	sty.deferred = nil
	sty.flagMu.Unlock()
	n := 0
	for _, m := range maps {
		for el, flags := range m {
			if !el.HasSelectorFlags(flags) {
				el.SetSelectorFlags(flags)
			}
			n++
		}
	}
	if n > 0 {
		tracer().Debugf("flushed %d deferred selector flag sets", n)
	}
}

// ConsumeDamage walks the styled tree, hands every element's pending
// damage to f and clears the restyle records. Elements without pending
// damage are skipped. Call after a pass, before the next one.
func ConsumeDamage(root dom.Element, f func(dom.Element, damage.Damage)) {
	data := root.Data()
	if rd := data.Restyle(); rd != nil {
		if dm := rd.UnhandledDamage(); !dm.IsEmpty() {
			rd.DamageHandled = rd.DamageHandled.Union(dm)
			f(root, dm)
		}
		data.ClearRestyle()
	}
	root.EachChild(func(ch dom.Element) bool {
		ConsumeDamage(ch, f)
		return true
	})
}
