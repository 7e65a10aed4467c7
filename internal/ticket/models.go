package ticket

// StatusOpen is the status every ticket starts with.
const StatusOpen = "open"

// Ticket is a support request tracked by the ticket service.
type Ticket struct {
	ID          int    `json:"id" bson:"id"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
	Status      string `json:"status" bson:"status"`
}

// CreateRequest carries the caller-supplied fields of a new ticket.
// Status is not accepted; new tickets are always open.
type CreateRequest struct {
	Title       string
	Description string
}

// UpdateRequest holds the optional fields of a ticket update. A nil or empty
// value leaves the corresponding field untouched, so an update can never
// clear a field to "".
type UpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// Apply overwrites the fields of t that are set in u and returns the names
// of the fields it changed.
func (u UpdateRequest) Apply(t *Ticket) []string {
	var changed []string
	if provided(u.Title) {
		t.Title = *u.Title
		changed = append(changed, "title")
	}
	if provided(u.Description) {
		t.Description = *u.Description
		changed = append(changed, "description")
	}
	if provided(u.Status) {
		t.Status = *u.Status
		changed = append(changed, "status")
	}
	return changed
}

func provided(v *string) bool {
	return v != nil && *v != ""
}
