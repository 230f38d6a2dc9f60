package filter

import "github.com/me/showcase/pkg/model"

// Partition splits filtered items into a featured spotlight group and the
// regular remainder. Every input item lands in exactly one output.
//
// With featuredOnly set, the whole set is featured. When featuredAvailable
// is false the backend cannot distinguish featured items, so nothing is
// featured; callers are expected to report that rather than hide it.
func Partition(items []*model.ContentItem, featuredOnly, featuredAvailable bool) (featured, regular []*model.ContentItem) {
	featured = []*model.ContentItem{}
	regular = []*model.ContentItem{}

	switch {
	case featuredOnly:
		featured = append(featured, items...)
	case !featuredAvailable:
		regular = append(regular, items...)
	default:
		for _, item := range items {
			if item.Featured {
				featured = append(featured, item)
			} else {
				regular = append(regular, item)
			}
		}
	}
	return featured, regular
}
