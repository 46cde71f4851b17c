package post

import (
	"sort"

	"github.com/portfolio-site/core/internal/models"
)

// SortOrder selects the display ordering for the unpinned portion of a list.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
	SortHot    SortOrder = "hot"
)

// SortForDisplay applies the listing policy: pinned posts come first, kept
// in collection order among themselves, and only the unpinned remainder is
// sorted by the chosen key. Pinned and unpinned posts are never interleaved.
func SortForDisplay(posts []models.BlogPost, order SortOrder) []models.BlogPost {
	pinned := []models.BlogPost{}
	unpinned := []models.BlogPost{}
	for _, p := range posts {
		if p.Pinned {
			pinned = append(pinned, p)
		} else {
			unpinned = append(unpinned, p)
		}
	}

	switch order {
	case SortNewest:
		sort.SliceStable(unpinned, func(i, j int) bool {
			return unpinned[i].SortTime() > unpinned[j].SortTime()
		})
	case SortOldest:
		sort.SliceStable(unpinned, func(i, j int) bool {
			return unpinned[i].SortTime() < unpinned[j].SortTime()
		})
	case SortHot:
		sort.SliceStable(unpinned, func(i, j int) bool {
			return unpinned[i].Likes > unpinned[j].Likes
		})
	}

	return append(pinned, unpinned...)
}
