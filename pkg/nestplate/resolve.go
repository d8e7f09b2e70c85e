package nestplate

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/nestplate/pkg/nestplate/observability"
	"github.com/randalmurphal/nestplate/pkg/nestplate/values"
)

// Stats describes what a resolution did.
type Stats struct {
	// Substitutions counts replacements of a placeholder by a present value.
	Substitutions int

	// Unresolved counts distinct placeholder tokens none of whose
	// candidate keys was present, including tokens then replaced by the
	// global substitute.
	Unresolved int

	// GuardTrips counts scan positions abandoned because the previous
	// attempt did not change the message.
	GuardTrips int

	// Nested counts placeholders whose name was itself resolved first.
	Nested int

	// Steps counts message mutations.
	Steps int

	// Reopened counts mutations whose replacement text contains the begin
	// delimiter. The step limit applies to this count.
	Reopened int

	// Limited is true when the step or length limit cut the resolution short.
	Limited bool
}

// Result is the output of ResolveDetailed.
type Result struct {
	Output string
	Stats  Stats
}

type state int

const (
	stateScanning state = iota
	stateResolvingNested
	stateDone
)

// resolution is the private state of one top-level call. Nested names are
// resolved with the same resolution so they share the working values,
// counters and limits.
type resolution struct {
	tmpl       *Template
	ctx        context.Context
	logger     *slog.Logger
	values     map[string]any
	stats      Stats
	unresolved map[string]struct{}
	limitErr   error
}

func (t *Template) run(ctx context.Context, message string, perCall map[string]any) Result {
	r := &resolution{
		tmpl:   t,
		ctx:    ctx,
		values: t.merged(perCall),
	}

	var spanErr error
	start := time.Now()
	if t.logger != nil || t.tracing {
		id := uuid.NewString()
		r.logger = observability.EnrichLogger(t.logger, id)
		spanCtx, span := t.spans.StartResolveSpan(ctx, id, len(message))
		r.ctx = spanCtx
		defer func() { t.spans.EndSpanWithError(span, spanErr) }()
	}
	observability.LogResolveStart(r.logger, len(message), len(r.values))

	out := r.resolve(message)

	r.stats.Unresolved = len(r.unresolved)
	spanErr = r.limitErr
	duration := time.Since(start)
	observability.LogResolveComplete(r.logger, observability.Millis(duration),
		r.stats.Substitutions, r.stats.Unresolved, r.stats.GuardTrips)
	observability.AnnotateResolveSpan(r.ctx,
		r.stats.Substitutions, r.stats.Unresolved, r.stats.GuardTrips, r.stats.Steps)
	t.metrics.RecordResolution(r.ctx, duration,
		r.stats.Substitutions, r.stats.Unresolved, r.stats.GuardTrips, r.stats.Limited)

	return Result{Output: out, Stats: r.stats}
}

// resolve expands message innermost-first, scanning right to left.
//
// After a mutation the cursor keeps its place relative to the text to its
// right, or moves to the end of the replacement when the replaced token
// extended past it. A scan that finds the message unchanged since the last
// replacement attempt retreats past the current opener, so every run of
// non-mutating attempts strictly decreases the cursor.
func (r *resolution) resolve(message string) string {
	d := r.tmpl.delims
	msg := message
	pos := len(msg)

	var (
		guard   string
		guarded bool
		begin   int
		end     int
		name    string
		token   string
	)

	st := stateScanning
	for st != stateDone {
		switch st {
		case stateScanning:
			if r.limited() {
				st = stateDone
				continue
			}
			begin = lastIndexAtOrBefore(msg, d.Begin, pos)
			if begin < 0 {
				st = stateDone
				continue
			}
			rel := strings.Index(msg[begin+len(d.Begin):], d.End)
			if rel < 0 {
				// Dangling opener: leave it and keep looking further left.
				pos, guarded = begin-1, false
				if pos < 0 {
					st = stateDone
				}
				continue
			}
			if guarded && msg == guard {
				r.stats.GuardTrips++
				observability.LogGuardTrip(r.logger, begin, pos)
				pos, guarded = begin-1, false
				if pos < 0 {
					st = stateDone
				}
				continue
			}

			end = begin + len(d.Begin) + rel + len(d.End)
			name = msg[begin+len(d.Begin) : end-len(d.End)]
			token = msg[begin:end]
			if strings.Contains(name, d.Begin) {
				st = stateResolvingNested
				continue
			}

			repl, found := r.leaf(name, token)
			next, ok := r.replace(msg, token, repl)
			guard, guarded = msg, true
			if !ok {
				st = stateDone
				continue
			}
			if next != msg {
				if found {
					r.stats.Substitutions++
				}
				msg, pos = next, advance(msg, token, repl, pos, end)
			}

		case stateResolvingNested:
			r.stats.Nested++
			resolvedName := r.resolve(name)
			next, ok := r.replace(msg, token, resolvedName)
			guard, guarded = msg, true
			st = stateScanning
			if !ok {
				st = stateDone
				continue
			}
			if next != msg {
				msg, pos = next, advance(msg, token, resolvedName, pos, end)
			}
		}
	}
	return msg
}

// leaf returns the replacement for a placeholder whose name holds no
// nested opener: the first present candidate, else the substitute, else
// the token itself. found reports whether a candidate key was present.
func (r *resolution) leaf(name, token string) (repl string, found bool) {
	for _, key := range r.tmpl.delims.Candidates(name) {
		if v, ok := r.values[key]; ok {
			return values.String(v), true
		}
	}

	if r.unresolved == nil {
		r.unresolved = make(map[string]struct{})
	}
	if _, seen := r.unresolved[token]; !seen {
		r.unresolved[token] = struct{}{}
		observability.LogUnresolved(r.logger, token, r.tmpl.substitute != nil)
	}
	if r.tmpl.substitute != nil {
		return *r.tmpl.substitute, false
	}
	return token, false
}

// replace substitutes every occurrence of token in msg. It reports false
// when a replacement containing the begin delimiter would grow the message
// past the length limit, in which case msg is returned unchanged and the
// resolution is marked limited.
func (r *resolution) replace(msg, token, repl string) (string, bool) {
	if repl == token {
		return msg, true
	}
	reopens := strings.Contains(repl, r.tmpl.delims.Begin)
	if limit := r.tmpl.maxLength; reopens && limit > 0 && len(repl) > len(token) {
		grown := len(msg) + strings.Count(msg, token)*(len(repl)-len(token))
		if grown > limit {
			r.stop(ErrLengthLimit)
			return msg, false
		}
	}
	r.stats.Steps++
	if reopens {
		r.stats.Reopened++
	}
	return strings.ReplaceAll(msg, token, repl), true
}

// advance maps the cursor pos in msg to the message after every token is
// replaced by repl. end is the exclusive end of the scanned token. When the
// token extended past pos the cursor moves to the last byte of its
// replacement, so openers inside the replacement are scanned next.
func advance(msg, token, repl string, pos, end int) int {
	cut := min(max(pos+1, end), len(msg))
	return cut - 1 + strings.Count(msg[:cut], token)*(len(repl)-len(token))
}

// limited reports whether the resolution must stop, marking it limited
// the first time the step budget runs out. Only reopening mutations spend
// it.
func (r *resolution) limited() bool {
	if r.limitErr != nil {
		return true
	}
	if limit := r.tmpl.maxSteps; limit > 0 && r.stats.Reopened >= limit {
		r.stop(ErrStepLimit)
		return true
	}
	return false
}

func (r *resolution) stop(err error) {
	if r.limitErr != nil {
		return
	}
	r.limitErr = err
	r.stats.Limited = true
	observability.LogStepLimit(r.logger, r.stats.Steps)
	observability.AddSpanEvent(r.ctx, "limit_reached",
		attribute.String("reason", err.Error()),
		attribute.Int("steps", r.stats.Steps),
	)
}

// lastIndexAtOrBefore returns the index of the last occurrence of sub in s
// that starts at or before pos, or -1.
func lastIndexAtOrBefore(s, sub string, pos int) int {
	if pos < 0 {
		return -1
	}
	return strings.LastIndex(s[:min(pos+len(sub), len(s))], sub)
}
