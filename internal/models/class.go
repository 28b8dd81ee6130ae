package models

// Class is one course section of the fixed catalogue.
type Class struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Title renders the "<id> - <name>" label used in exports.
func (c Class) Title() string {
	return c.ID + " - " + c.Name
}
