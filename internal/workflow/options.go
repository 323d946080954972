package workflow

import "log/slog"

// Options carries the optional collaborators shared by both flows.
// Zero values select defaults: slog.Default() and UUIDv7 session IDs.
type Options struct {
	Logger   *slog.Logger
	Sessions SessionGenerator
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o Options) sessions() SessionGenerator {
	if o.Sessions == nil {
		return UUIDv7Generator{}
	}
	return o.Sessions
}
