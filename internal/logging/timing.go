package logging

import "time"

// Timer measures one operation for a DEBUG record.
//
//	t := logging.Start("project form")
//	defer t.End("paths", spec.Len())
type Timer struct {
	name  string
	start time.Time
}

// Start begins timing the named operation.
func Start(name string) Timer {
	return Timer{name: name, start: time.Now()}
}

// End logs the elapsed time together with the given attributes.
func (t Timer) End(args ...any) {
	if !Enabled() {
		return
	}
	elapsed := time.Since(t.start)
	Debug(t.name, append([]any{"duration", elapsed.String(), "ms", elapsed.Milliseconds()}, args...)...)
}
