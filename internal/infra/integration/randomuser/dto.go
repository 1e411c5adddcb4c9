package randomuser

// ExternalLead mirrors one entry of the randomuser.me payload.
type ExternalLead struct {
	Name struct {
		First string `json:"first"`
		Last  string `json:"last"`
	} `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Cell    string `json:"cell"`
	Picture struct {
		Large string `json:"large"`
	} `json:"picture"`
}

type feedResponse struct {
	Results []ExternalLead `json:"results"`
}
