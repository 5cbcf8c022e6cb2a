package app

import (
	"context"
	"log"
	"sync"

	"github.com/juniorcleaning/cleaning-app/models"
)

// NewsFeed holds the one-shot snapshot of the news collection. Each
// Refresh replaces the whole list; a failed fetch leaves it empty.
type NewsFeed struct {
	mu    sync.Mutex
	docs  Documents
	items []models.NewsItem
}

func NewNewsFeed(docs Documents) *NewsFeed {
	return &NewsFeed{docs: docs}
}

// Refresh fetches the full collection, newest first.
func (n *NewsFeed) Refresh(ctx context.Context) {
	items, err := n.docs.ListNews(ctx)
	n.mu.Lock()
	defer n.mu.Unlock()
	if err != nil {
		log.Printf("news fetch failed: %v", err)
		n.items = nil
		return
	}
	n.items = items
}

// Items returns the current snapshot. An empty slice is a valid state,
// not an error.
func (n *NewsFeed) Items() []models.NewsItem {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]models.NewsItem, len(n.items))
	copy(out, n.items)
	return out
}
