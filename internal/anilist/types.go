package anilist

// Media is one anime entry normalized from an AniList response.
// AverageScore is nil when AniList has no score for the entry.
type Media struct {
	ID           int
	Title        string
	SiteURL      string
	AverageScore *int
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type mediaPayload struct {
	ID    int `json:"id"`
	Title struct {
		UserPreferred string `json:"userPreferred"`
	} `json:"title"`
	SiteURL      string `json:"siteUrl"`
	AverageScore *int   `json:"averageScore"`
}

// MediaListCollection groups a user's list into segments; entries must be
// flattened across every segment, not just the first.
type mediaListCollectionResponse struct {
	Data struct {
		MediaListCollection struct {
			Lists []struct {
				Entries []struct {
					Media mediaPayload `json:"media"`
				} `json:"entries"`
			} `json:"lists"`
		} `json:"MediaListCollection"`
	} `json:"data"`
}

type pageResponse struct {
	Data struct {
		Page struct {
			Media []mediaPayload `json:"media"`
		} `json:"Page"`
	} `json:"data"`
}

func (p mediaPayload) toMedia() Media {
	return Media{
		ID:           p.ID,
		Title:        p.Title.UserPreferred,
		SiteURL:      p.SiteURL,
		AverageScore: p.AverageScore,
	}
}
