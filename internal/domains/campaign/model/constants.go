package model

const (
	// Listing
	MostVisitedLimit = 6

	SortNewest      = "newest"
	SortMostVisited = "most-visited"

	// Content limits
	MinTitleLength       = 3
	MaxTitleLength       = 200
	MinDescriptionLength = 10
	MaxDescriptionLength = 5000
	MaxAdditionalImages  = 10

	// Stats windows (days)
	StatsWindowShort = 7
	StatsWindowLong  = 30
)
