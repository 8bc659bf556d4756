package episode

import "moviedb/title"

type Episode struct {
	Tconst        string `json:"tconst"`
	ParentTconst  string `json:"parentTconst"`
	SeasonNumber  *int   `json:"seasonNumber"`
	EpisodeNumber *int   `json:"episodeNumber"`

	Title *title.Title `json:"title,omitempty"`
}

// Season groups the episodes of one season in episode order. Episodes
// without a season number share a nil season.
type Season struct {
	SeasonNumber *int      `json:"seasonNumber"`
	Episodes     []Episode `json:"episodes"`
}

type Patch struct {
	ParentTconst  *string
	SeasonNumber  *int
	EpisodeNumber *int
}

func (p Patch) Empty() bool {
	return p.ParentTconst == nil && p.SeasonNumber == nil && p.EpisodeNumber == nil
}

type Filter struct {
	ParentTconst  string
	Season        *int
	IncludeTitles bool
}
