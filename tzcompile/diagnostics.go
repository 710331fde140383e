package tzcompile

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Diagnostics collects the non-fatal failures encountered during a
// Compile run: a malformed data-file line (keyed "parse:<file>") or a
// zone that failed to resolve or expand (keyed by zone name). The zero
// value has no failures and is ready to use.
type Diagnostics struct {
	mu     sync.Mutex
	errors map[string]error
}

func (d *Diagnostics) add(key string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.errors == nil {
		d.errors = make(map[string]error)
	}
	d.errors[key] = err
}

// Empty reports whether nothing failed.
func (d *Diagnostics) Empty() bool {
	if d == nil {
		return true
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.errors) == 0
}

// Failed returns the keys that failed, sorted.
func (d *Diagnostics) Failed() []string {
	if d.Empty() {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	names := make([]string, 0, len(d.errors))
	for name := range d.errors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Err joins every recorded failure into one error with errors.Join, in
// key order so output is reproducible across runs. Returns nil if
// nothing failed.
func (d *Diagnostics) Err() error {
	names := d.Failed()
	if len(names) == 0 {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	errs := make([]error, len(names))
	for i, name := range names {
		errs[i] = fmt.Errorf("%s: %w", name, d.errors[name])
	}
	return errors.Join(errs...)
}
