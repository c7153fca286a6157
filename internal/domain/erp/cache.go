package erp

import "sync"

// Cache memoizes sheet loads for the lifetime of one run. Each sheet is
// loaded at most once even under concurrent first access, and a failed
// load is remembered so the sheet stays excluded until Clear. The cache
// is injected into the resolver, never process-global, so tests can
// substitute a fake source.
type Cache struct {
	source Source
	cols   Columns

	mu     sync.Mutex
	sheets map[string]*sheetEntry
}

type sheetEntry struct {
	once  sync.Once
	table *Table
	err   error
}

// NewCache wraps a source with once-per-sheet memoization.
func NewCache(source Source, cols Columns) *Cache {
	return &Cache{
		source: source,
		cols:   cols,
		sheets: make(map[string]*sheetEntry),
	}
}

// Sheet returns the cached table for name, loading it on first access.
// Concurrent callers block on the same load rather than racing it.
func (c *Cache) Sheet(name string) (*Table, error) {
	c.mu.Lock()
	entry, ok := c.sheets[name]
	if !ok {
		entry = &sheetEntry{}
		c.sheets[name] = entry
	}
	c.mu.Unlock()

	entry.once.Do(func() {
		entry.table, entry.err = c.source.LoadSheet(name, c.cols)
	})
	return entry.table, entry.err
}

// Clear drops every cached sheet, forcing reloads on next access.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.sheets = make(map[string]*sheetEntry)
	c.mu.Unlock()
}
