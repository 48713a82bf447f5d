package ritmo

import (
	"context"
	"fmt"
)

type FeedItem struct {
	Activity
	HasLiked bool
}

type FeedPage struct {
	Items       []FeedItem
	TotalItems  int
	TotalPages  int
	CurrentPage int
}

// FeedService composes an activity page with the viewer's like state.
// Browsing is public: viewer may be NoViewer, in which case every item
// reports HasLiked=false. Only mutating operations require a viewer.
type FeedService struct {
	Activities ActivityStore
	Likes      LikeStore
}

func (s FeedService) GetFeed(ctx context.Context, viewer UserId, query FeedQuery) (FeedPage, error) {
	if err := query.Validate(); err != nil {
		return FeedPage{}, err
	}

	page, err := s.Activities.ListPage(ctx, query)
	if err != nil {
		return FeedPage{}, fmt.Errorf("list activities: %w", err)
	}

	items := make([]FeedItem, len(page.Items))
	for i, activity := range page.Items {
		item := FeedItem{Activity: activity}
		if viewer != NoViewer {
			liked, err := s.Likes.HasLiked(ctx, viewer, activity.Id)
			if err != nil {
				return FeedPage{}, fmt.Errorf("check like state: %w", err)
			}
			item.HasLiked = liked
		}
		items[i] = item
	}

	totalPages := (page.TotalItems + query.PageSize - 1) / query.PageSize
	return FeedPage{
		Items:       items,
		TotalItems:  page.TotalItems,
		TotalPages:  totalPages,
		CurrentPage: query.Page,
	}, nil
}
