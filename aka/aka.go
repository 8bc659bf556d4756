package aka

type Aka struct {
	TitleID         string   `json:"titleId"`
	Ordering        int      `json:"ordering"`
	Title           string   `json:"title"`
	Region          *string  `json:"region"`
	Language        *string  `json:"language"`
	Types           []string `json:"types"`
	Attributes      []string `json:"attributes"`
	IsOriginalTitle bool     `json:"isOriginalTitle"`
}

type Patch struct {
	Title           *string
	Region          *string
	Language        *string
	Types           []string
	Attributes      []string
	IsOriginalTitle *bool
}

func (p Patch) Empty() bool {
	return p.Title == nil && p.Region == nil && p.Language == nil &&
		p.Types == nil && p.Attributes == nil && p.IsOriginalTitle == nil
}

// Filter results are always ordered by titleId then ordering.
type Filter struct {
	TitleID         string
	Region          *string
	Language        *string
	IsOriginalTitle *bool
}
