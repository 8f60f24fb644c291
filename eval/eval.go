// Package eval provides a small engine for running model evaluations.
//
// An evaluation consists of three parts:
//   - Cases: test inputs with expected outputs
//   - Task: a function that calls the model under test
//   - Scorers: functions that grade each task output
//
// The engine runs every case through the task and the scorers, records the
// per-case scores, and aggregates them into per-scorer means. Failures are
// local: a task or scorer error is folded into the case's scores as zero and
// never aborts the run.
package eval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	attr "go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/cascadelabs/qreval-go/logger"
)

var (
	errCaseIterator = errors.New("case iterator error")

	// span "type" attributes for each kind of eval span.
	evalSpanAttrs  = map[string]any{"type": "eval"}
	taskSpanAttrs  = map[string]any{"type": "task"}
	scoreSpanAttrs = map[string]any{"type": "score"}
)

// TaskFunc is the unit of work being evaluated: it takes a case input and
// returns the model output.
type TaskFunc[I, R any] func(ctx context.Context, input I) (R, error)

// Case is a single test case.
type Case[I, R any] struct {
	// Input is the input to the task function.
	Input I

	// Expected is the expected output, used by scorers.
	Expected R

	// Metadata is additional metadata for this case. Optional.
	Metadata map[string]any
}

// Cases is an iterator over test cases.
// Implementations must return io.EOF when iteration is complete.
type Cases[I, R any] interface {
	Next() (Case[I, R], error)
}

// NewCases returns a Cases iterator that yields each element of cases in
// order, then io.EOF. It covers the usual situation where the whole dataset
// fits in memory.
func NewCases[I, R any](cases []Case[I, R]) Cases[I, R] {
	cs := caseSlice[I, R](cases)
	return &cs
}

// caseSlice iterates by consuming itself front to back.
type caseSlice[I, R any] []Case[I, R]

func (s *caseSlice[I, R]) Next() (Case[I, R], error) {
	if len(*s) == 0 {
		var zero Case[I, R]
		return zero, io.EOF
	}
	c := (*s)[0]
	*s = (*s)[1:]
	return c, nil
}

// Opts defines an evaluation run.
type Opts[I, R any] struct {
	// Name identifies the run (model id, experiment name...). Required.
	Name string

	// Cases iterates the test cases. Required.
	Cases Cases[I, R]

	// Task is the function under evaluation. Required.
	Task TaskFunc[I, R]

	// Scorers grade each task output. Optional.
	Scorers []Scorer[I, R]

	// AfterCase is called after each case completes, before the next one
	// starts. Useful for pacing requests against rate-limited APIs. Optional.
	AfterCase func(ctx context.Context, rec CaseRecord) error

	// Logger receives per-case progress. Optional.
	Logger logger.Logger
}

// CaseRecord is the outcome of a single case.
type CaseRecord struct {
	Index  int                `json:"index"`
	Input  any                `json:"input"`
	Output any                `json:"output"`
	Scores map[string]float64 `json:"scores"`
	Err    string             `json:"error,omitempty"`

	// Metadata holds values the scorers attached while grading this case
	// (see Score.Metadata). Nil when no scorer attached anything.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Result holds the outcome of an evaluation run.
type Result struct {
	Name    string
	Records []CaseRecord
	Elapsed time.Duration

	scorerNames []string
}

// Mean returns the mean of the named score over all recorded cases,
// or 0 when no cases were recorded. Cases where the scorer did not run
// (task failure) count as zero.
func (r *Result) Mean(name string) float64 {
	if len(r.Records) == 0 {
		return 0
	}
	var sum float64
	for _, rec := range r.Records {
		sum += rec.Scores[name]
	}
	return sum / float64(len(r.Records))
}

// Means returns the mean for every scorer that took part in the run.
func (r *Result) Means() map[string]float64 {
	means := make(map[string]float64, len(r.scorerNames))
	for _, name := range r.scorerNames {
		means[name] = r.Mean(name)
	}
	return means
}

// String returns a console summary of the result.
func (r *Result) String() string {
	s := fmt.Sprintf("\n=== Evaluation: %s ===\nCases: %d\nDuration: %.1fs\n",
		r.Name, len(r.Records), r.Elapsed.Seconds())
	for _, name := range r.scorerNames {
		s += fmt.Sprintf("%s: %.2f\n", name, r.Mean(name))
	}
	return s
}

// Run executes the evaluation sequentially and returns the collected result.
// Task and scorer failures are recorded on the case (score zero) and do not
// stop the run; only case-iterator errors are returned, joined.
func Run[I, R any](ctx context.Context, opts Opts[I, R]) (*Result, error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("opts.Name is required")
	}
	if opts.Cases == nil || opts.Task == nil {
		return nil, fmt.Errorf("opts.Cases and opts.Task are required")
	}

	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	e := &eval[I, R]{
		opts:   opts,
		log:    log,
		tracer: otel.GetTracerProvider().Tracer("qreval.eval"),
	}
	return e.run(ctx)
}

type eval[I, R any] struct {
	opts   Opts[I, R]
	log    logger.Logger
	tracer oteltrace.Tracer
}

func (e *eval[I, R]) run(ctx context.Context) (*Result, error) {
	start := time.Now()

	result := &Result{Name: e.opts.Name}
	for _, s := range e.opts.Scorers {
		result.scorerNames = append(result.scorerNames, s.Name())
	}

	var errs []error
	for i := 0; ; i++ {
		c, err := e.opts.Cases.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", errCaseIterator, err))
			continue
		}

		rec := e.runCase(ctx, i, c)
		result.Records = append(result.Records, rec)

		if e.opts.AfterCase != nil {
			if err := e.opts.AfterCase(ctx, rec); err != nil {
				errs = append(errs, err)
				break
			}
		}
	}

	result.Elapsed = time.Since(start)
	return result, errors.Join(errs...)
}

// runCase executes the task and scorers for one case. Task and scorer errors
// end up in the record, not in the return value.
func (e *eval[I, R]) runCase(ctx context.Context, index int, c Case[I, R]) CaseRecord {
	ctx, span := e.tracer.Start(ctx, "eval")
	defer span.End()

	rec := CaseRecord{
		Index:  index,
		Input:  c.Input,
		Scores: make(map[string]float64, len(e.opts.Scorers)),
	}
	for _, s := range e.opts.Scorers {
		rec.Scores[s.Name()] = 0
	}

	e.log.Info("running case", "index", index, "input", c.Input)

	output, err := e.runTask(ctx, c)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		rec.Err = err.Error()
		e.log.Warn("task failed", "index", index, "error", err)
		return rec
	}
	rec.Output = output

	e.runScorers(ctx, c, output, &rec)

	meta := map[string]any{
		"eval.span_attributes": evalSpanAttrs,
		"eval.input_json":      c.Input,
		"eval.output_json":     output,
		"eval.expected":        c.Expected,
	}
	if c.Metadata != nil {
		meta["eval.metadata"] = c.Metadata
	}
	_ = setJSONAttrs(span, meta)

	return rec
}

func (e *eval[I, R]) runTask(ctx context.Context, c Case[I, R]) (R, error) {
	ctx, span := e.tracer.Start(ctx, "task")
	defer span.End()

	output, err := e.opts.Task(ctx, c.Input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return output, err
	}

	_ = setJSONAttrs(span, map[string]any{
		"eval.span_attributes": taskSpanAttrs,
		"eval.input_json":      c.Input,
		"eval.output_json":     output,
	})
	return output, nil
}

func (e *eval[I, R]) runScorers(ctx context.Context, c Case[I, R], output R, rec *CaseRecord) {
	ctx, span := e.tracer.Start(ctx, "score")
	defer span.End()

	_ = setJSONAttr(span, "eval.span_attributes", scoreSpanAttrs)

	result := TaskResult[I, R]{
		Input:    c.Input,
		Expected: c.Expected,
		Output:   output,
	}

	for _, scorer := range e.opts.Scorers {
		scores, err := scorer.Run(ctx, result)
		if err != nil {
			werr := fmt.Errorf("scorer %q failed: %w", scorer.Name(), err)
			span.RecordError(werr)
			e.log.Warn("scorer failed", "scorer", scorer.Name(), "error", err)
			continue
		}
		for _, s := range scores {
			name := s.Name
			if name == "" {
				name = scorer.Name()
			}
			rec.Scores[name] = s.Score
			for k, v := range s.Metadata {
				if rec.Metadata == nil {
					rec.Metadata = make(map[string]any)
				}
				rec.Metadata[k] = v
			}
		}
	}

	_ = setJSONAttr(span, "eval.scores", rec.Scores)
}

func setJSONAttrs(span oteltrace.Span, attrs map[string]any) error {
	var errs []error
	for key, value := range attrs {
		if err := setJSONAttr(span, key, value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func setJSONAttr(span oteltrace.Span, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	span.SetAttributes(attr.String(key, string(b)))
	return nil
}
