// Package ranking computes the trending score used to order meme listings.
package ranking

import "time"

const (
	// likeWeight is how much one like counts relative to one view.
	likeWeight = 2
	// recencyWindowDays is the span over which the recency bonus decays to zero.
	recencyWindowDays = 10
)

// Score computes the trending score for an item with the given like count,
// view count, and age in whole days. The recency bonus decays linearly and
// never goes negative, so the result is always >= 0 for non-negative inputs;
// an aged item with zero engagement legitimately scores 0.
func Score(likes, views, ageDays int) int {
	if likes < 0 {
		likes = 0
	}
	if views < 0 {
		views = 0
	}
	bonus := recencyWindowDays - ageDays
	if bonus < 0 {
		bonus = 0
	}
	return likeWeight*likes + views + bonus
}

// AgeDays returns the age of createdAt in whole days as of now.
func AgeDays(createdAt, now time.Time) int {
	if now.Before(createdAt) {
		return 0
	}
	return int(now.Sub(createdAt).Hours() / 24)
}

// ScoreAt computes the trending score of an item created at createdAt as of now.
func ScoreAt(likes, views int, createdAt, now time.Time) int {
	return Score(likes, views, AgeDays(createdAt, now))
}
