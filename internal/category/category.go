// Package category maps channel names to category groups and decides
// which channels a category excludes or ignores.
package category

import "sync"

// Uncategorized is the fallback descriptor name when neither an explicit
// channel binding nor a fallback category resolves.
const Uncategorized = "uncategorized"

// Descriptor is static routing configuration for one category group.
type Descriptor struct {
	Name string
	Icon string
	// Channels is the explicit inclusion list: a channel name appearing
	// here binds to this descriptor regardless of any parse-time hint.
	Channels []string
	// Excludes is the exclusion list. The sentinel "*" means "exclude all
	// channels except those in Channels".
	Excludes []string
}

func (d Descriptor) excludesAll() bool {
	for _, e := range d.Excludes {
		if e == "*" {
			return true
		}
	}
	return false
}

func (d Descriptor) hasChannel(name string) bool {
	for _, c := range d.Channels {
		if c == name {
			return true
		}
	}
	return false
}

func (d Descriptor) excludesChannel(name string) bool {
	for _, e := range d.Excludes {
		if e == name {
			return true
		}
	}
	return false
}

// Manager is a process-wide registry mapping category name to descriptor.
// Mutations are fully serialized; explicit channel bindings are indexed
// at construction/update time for O(1) resolve lookups.
type Manager struct {
	mu          sync.RWMutex
	descriptors map[string]Descriptor
	order       []string // canonical groups() order
	channelIdx  map[string]string
	ignored     map[string]struct{}
}

// New returns an empty Manager plus the mandatory uncategorized descriptor.
func New() *Manager {
	m := &Manager{
		descriptors: make(map[string]Descriptor),
		channelIdx:  make(map[string]string),
		ignored:     make(map[string]struct{}),
	}
	m.update(Descriptor{Name: Uncategorized, Icon: "📂"})
	return m
}

// Update inserts or replaces descriptors and rebuilds the channel-binding
// index. Category order is append-on-first-sight; re-updating an existing
// category keeps its original position.
func (m *Manager) Update(descriptors ...Descriptor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range descriptors {
		m.update(d)
	}
	m.rebuildIndex()
}

func (m *Manager) update(d Descriptor) {
	if _, exists := m.descriptors[d.Name]; !exists {
		m.order = append(m.order, d.Name)
	}
	m.descriptors[d.Name] = d
}

// SetIgnored replaces the ignore set with the given category names.
func (m *Manager) SetIgnored(names ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ignored = make(map[string]struct{}, len(names))
	for _, n := range names {
		m.ignored[n] = struct{}{}
	}
}

func (m *Manager) rebuildIndex() {
	m.channelIdx = make(map[string]string)
	// Iterate in canonical order so that, per spec.md §8, a channel name
	// present in two categories' Channels lists resolves to the first in
	// category iteration order.
	for _, name := range m.order {
		d := m.descriptors[name]
		for _, ch := range d.Channels {
			if _, bound := m.channelIdx[ch]; !bound {
				m.channelIdx[ch] = name
			}
		}
	}
}

// Remove deletes a descriptor by name and rebuilds the channel index.
func (m *Manager) Remove(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.descriptors, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.rebuildIndex()
}

// Clear removes all descriptors and bindings, then restores the mandatory
// uncategorized descriptor.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.descriptors = make(map[string]Descriptor)
	m.order = nil
	m.ignored = make(map[string]struct{})
	m.update(Descriptor{Name: Uncategorized, Icon: "📂"})
	m.rebuildIndex()
}

// Resolve returns the descriptor a channel name binds to: an explicit
// Channels-list binding dominates; otherwise the fallback category;
// otherwise Uncategorized.
func (m *Manager) Resolve(channelName, fallbackCategory string) Descriptor {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if boundName, ok := m.channelIdx[channelName]; ok {
		return m.descriptors[boundName]
	}
	if d, ok := m.descriptors[fallbackCategory]; ok {
		return d
	}
	return m.descriptors[Uncategorized]
}

// IsExcluded reports whether descriptor excludes channelName: true if "*"
// is in Excludes and channelName is not in Channels, or channelName is
// listed verbatim in Excludes.
func IsExcluded(d Descriptor, channelName string) bool {
	if d.excludesAll() && !d.hasChannel(channelName) {
		return true
	}
	return d.excludesChannel(channelName)
}

// IsIgnored reports whether categoryName is in the ignore set: its
// channels are counted as zero in totals and skipped by live re-validation.
func (m *Manager) IsIgnored(categoryName string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.ignored[categoryName]
	return ok
}

// Groups returns the canonical category-name order used to sort Registry
// output: the order categories were first inserted via Update.
func (m *Manager) Groups() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Get returns the descriptor for name, if present.
func (m *Manager) Get(name string) (Descriptor, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.descriptors[name]
	return d, ok
}
