package handler

type createProjectRequest struct {
	Title         string   `json:"title"         validate:"required"`
	Tagline       string   `json:"tagline"       validate:"required"`
	Description   string   `json:"description"`
	URL           string   `json:"url"           validate:"required"`
	LogoURL       string   `json:"logoUrl"`
	ScreenshotURL string   `json:"screenshotUrl"`
	Tags          []string `json:"tags"`
	OwnerID       string   `json:"ownerId"`
}

// updateProjectRequest has no id, ownerId or createdAt: they are silently
// dropped from the body.
type updateProjectRequest struct {
	Title         *string   `json:"title"`
	Tagline       *string   `json:"tagline"`
	Description   *string   `json:"description"`
	URL           *string   `json:"url"`
	LogoURL       *string   `json:"logoUrl"`
	ScreenshotURL *string   `json:"screenshotUrl"`
	Tags          *[]string `json:"tags"`
	Votes         *int64    `json:"votes"`
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

type deleteResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type countResponse struct {
	Count    int  `json:"count"`
	Replayed bool `json:"replayed,omitempty"`
}
