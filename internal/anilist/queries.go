package anilist

// Query documents sent to the AniList GraphQL endpoint. All are read-only
// and unauthenticated.
const (
	planningQuery = `
query ($userName: String) {
    MediaListCollection(userName: $userName, type: ANIME, status: PLANNING) {
        lists {
            entries {
                media {
                    id
                    title {
                        userPreferred
                    }
                    siteUrl
                    averageScore
                }
            }
        }
    }
}`

	trendingQuery = `
query ($perPage: Int) {
    Page(perPage: $perPage) {
        media(isAdult: false, sort: TRENDING_DESC, type: ANIME) {
            id
            title {
                userPreferred
            }
            siteUrl
        }
    }
}`

	popularQuery = `
query ($perPage: Int) {
    Page(perPage: $perPage) {
        media(isAdult: false, sort: POPULARITY_DESC, type: ANIME) {
            id
            title {
                userPreferred
            }
            siteUrl
            averageScore
        }
    }
}`

	userListQuery = `
query ($userName: String) {
    MediaListCollection(userName: $userName, type: ANIME) {
        lists {
            entries {
                media {
                    id
                }
            }
        }
    }
}`
)
