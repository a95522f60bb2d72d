package wysiwyg

import "github.com/sirupsen/logrus"

// Option customizes an editor at creation
type Option func(*Editor)

// WithButtons registers button factories. They override built-in buttons
// with the same id and extend the set available to the toolbar.
func WithButtons(buttons map[string]ButtonFactory) Option {
	return func(e *Editor) {
		for id, factory := range buttons {
			e.factories[id] = factory
		}
	}
}

// WithCodeView replaces the source editor shown in code mode
func WithCodeView(factory CodeViewFactory) Option {
	return func(e *Editor) {
		e.codeViewFactory = factory
	}
}

// WithLogger sets the log entry the editor writes to
func WithLogger(log *logrus.Entry) Option {
	return func(e *Editor) {
		e.log = log
	}
}

// WithListener registers a handler before the editor is built, so it also
// receives EventInitialized
func WithListener(event string, handler Handler) Option {
	return func(e *Editor) {
		e.listeners.add(event, handler)
	}
}
