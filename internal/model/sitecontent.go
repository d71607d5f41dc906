package model

// HomeSection is one block of the home page letter, edited through the CMS.
type HomeSection struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Text         string `json:"text"`
	Illustration string `json:"illustration"`
	IsClosing    bool   `json:"isClosing,omitempty"`
}

type HomePageSettings struct {
	Sections []HomeSection `json:"sections"`
}
