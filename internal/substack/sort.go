package substack

import "slices"

// sortPosts orders posts newest first. The sort is stable: posts
// sharing a publish time keep the order the API returned them in.
func sortPosts(posts []Post) []Post {
	slices.SortStableFunc(posts, func(a, b Post) int {
		switch {
		case a.PostDate.After(b.PostDate):
			return -1
		case a.PostDate.Before(b.PostDate):
			return 1
		default:
			return 0
		}
	})
	return posts
}
