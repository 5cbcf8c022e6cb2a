package app

import "sync"

// Tab is one of the three top-level views.
type Tab string

const (
	TabHome    Tab = "home"
	TabBooking Tab = "booking"
	TabNews    Tab = "news"
)

// ViewRouter holds the active tab and whether the settings overlay is
// open. Pure state, nothing here touches storage.
type ViewRouter struct {
	mu           sync.Mutex
	tab          Tab
	settingsOpen bool
}

func NewViewRouter() *ViewRouter {
	return &ViewRouter{tab: TabHome}
}

// SetTab switches the active view. Unknown tags are ignored and reported
// back to the caller.
func (r *ViewRouter) SetTab(tab Tab) bool {
	switch tab {
	case TabHome, TabBooking, TabNews:
	default:
		return false
	}
	r.mu.Lock()
	r.tab = tab
	r.mu.Unlock()
	return true
}

func (r *ViewRouter) Tab() Tab {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tab
}

func (r *ViewRouter) OpenSettings() {
	r.mu.Lock()
	r.settingsOpen = true
	r.mu.Unlock()
}

func (r *ViewRouter) CloseSettings() {
	r.mu.Lock()
	r.settingsOpen = false
	r.mu.Unlock()
}

func (r *ViewRouter) SettingsOpen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settingsOpen
}

// Reset puts the router back to its defaults, as on a full reload.
func (r *ViewRouter) Reset() {
	r.mu.Lock()
	r.tab = TabHome
	r.settingsOpen = false
	r.mu.Unlock()
}
