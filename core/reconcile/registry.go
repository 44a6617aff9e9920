package reconcile

// Registry maps item-type keys to the instance id of their active sell listing.
// It is not safe for concurrent use; the Engine guards it with its own lock.
type Registry struct {
	entries map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]string)}
}

// Lookup returns the instance id registered for key.
func (r *Registry) Lookup(key string) (string, bool) {
	id, ok := r.entries[key]
	return id, ok
}

// Set registers id as the active sell listing for key, replacing any previous id.
func (r *Registry) Set(key, id string) {
	r.entries[key] = id
}

// Remove deletes the entry for key.
func (r *Registry) Remove(key string) {
	delete(r.entries, key)
}

// RemoveID deletes every entry pointing at id and returns how many were removed.
func (r *Registry) RemoveID(id string) int {
	removed := 0
	for key, existing := range r.entries {
		if existing == id {
			delete(r.entries, key)
			removed++
		}
	}
	return removed
}

// Clear removes all entries.
func (r *Registry) Clear() {
	clear(r.entries)
}

// Len returns the number of registered keys.
func (r *Registry) Len() int {
	return len(r.entries)
}
