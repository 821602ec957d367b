package telemetry

// API is where components send logs and counts, tests swap it for a
// Recorder.
//
// Ids name the component that misbehaved ("scraper.match", "mapper.roster"),
// never the step inside it: the step and the error go in params. Ids are
// lowercase, dots separate a type from its method and dashes join words.
type API interface {
	// ReportBroken is for failures someone needs to fix.
	ReportBroken(id string, params ...any)
	// ReportWarning is for surprises worth a look, like a page whose layout
	// no longer matches the selectors.
	ReportWarning(id string, params ...any)
	ReportDebug(msg string, params ...any)
	// ReportCount records the value of a counter at this point in time.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id with a namespace, "vlr: scraper.match".
// Scoping a ScopedAPI again extends the prefix.
type ScopedAPI struct {
	prefix string
	inner  API
}

func NewScopedAPI(namespace string, inner API) ScopedAPI {
	if scoped, ok := inner.(ScopedAPI); ok {
		return ScopedAPI{prefix: scoped.prefix + namespace + ": ", inner: scoped.inner}
	}
	return ScopedAPI{prefix: namespace + ": ", inner: inner}
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(s.prefix+id, params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(s.prefix+id, params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(s.prefix+msg, params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(s.prefix+id, count)
}
