package domain

// Identity is the authenticated caller as resolved from an access token.
// A nil *Identity means the caller is anonymous.
type Identity struct {
	Name AuthorName
}

// NameOf returns the identity name or "" for anonymous callers.
func NameOf(id *Identity) AuthorName {
	if id == nil {
		return ""
	}
	return id.Name
}
