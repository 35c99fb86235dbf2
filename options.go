package xlspan

import "go.uber.org/zap"

// Options holds configuration shared by the SpanController and SheetGrid.
type Options struct {
	logger    *zap.Logger
	listeners []SpanListener
	evaluator ExpressionEvaluator
	minRows   int
	minCols   int
}

func defaultOptions() *Options {
	return &Options{
		logger:  zap.NewNop(),
		minRows: 1,
		minCols: 1,
	}
}

func buildOptions(opts []Option) *Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures a SpanController or SheetGrid.
type Option func(*Options)

// WithLogger sets the logger used for debug output (default: no-op).
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithListener adds a listener notified after each applied or removed span.
func WithListener(l SpanListener) Option {
	return func(o *Options) { o.listeners = append(o.listeners, l) }
}

// WithEvaluator sets the evaluator used for merge command expressions.
func WithEvaluator(ev ExpressionEvaluator) Option {
	return func(o *Options) { o.evaluator = ev }
}

// WithMinSize sets the smallest grid a SheetGrid allocates (default: 1x1).
func WithMinSize(rows, cols int) Option {
	return func(o *Options) {
		o.minRows = rows
		o.minCols = cols
	}
}
