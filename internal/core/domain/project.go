package domain

// Project is a listing in the directory.
//
// ID, OwnerID and CreatedAt are fixed at creation; only bulk import may set
// them explicitly.
type Project struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Tagline       string   `json:"tagline"`
	Description   string   `json:"description"`
	URL           string   `json:"url"`
	LogoURL       string   `json:"logoUrl,omitempty"`
	ScreenshotURL string   `json:"screenshotUrl,omitempty"`
	Tags          []string `json:"tags"`
	OwnerID       string   `json:"ownerId"`
	CreatedAt     int64    `json:"createdAt"` // Unix milliseconds
	Votes         int64    `json:"votes"`
}

const (
	// OwnerAnonymous is assigned to submissions that carry no owner.
	OwnerAnonymous = "anonymous"
	// OwnerImported is assigned to imported records that carry no owner.
	OwnerImported = "imported"
)

// ManageableBy reports whether the actor may edit or delete the project:
// admins always, authenticated users only their own.
func (p Project) ManageableBy(a Actor) bool {
	if a.IsAdmin() {
		return true
	}
	return a.Authenticated && a.ID != "" && a.ID == p.OwnerID
}
