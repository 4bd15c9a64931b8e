package domain

// ViewState is the per-viewer page state: which discussion is open, which
// filter is active and whether the creation form is shown.
// Transitions return a new value and never touch the receiver.
type ViewState struct {
	Selected *DiscussionId `json:"selected,omitempty"`
	Filter   Filter        `json:"filter"`
	FormOpen bool          `json:"form_open"`
}

func (s ViewState) Select(id DiscussionId) ViewState {
	s.Selected = &id
	return s
}

func (s ViewState) Deselect() ViewState {
	s.Selected = nil
	return s
}

func (s ViewState) WithFilter(f Filter) ViewState {
	s.Filter = f
	return s
}

func (s ViewState) OpenForm() ViewState {
	s.FormOpen = true
	return s
}

func (s ViewState) CloseForm() ViewState {
	s.FormOpen = false
	return s
}

// AfterCreate is the state right after d was created by this viewer:
// the new discussion is selected and the form is closed.
func (s ViewState) AfterCreate(d Discussion) ViewState {
	return s.Select(d.Id).CloseForm()
}

// ForumPage is everything a view layer needs to draw the forum page.
type ForumPage struct {
	State       ViewState
	Discussions []Discussion
	Selected    *Discussion
}
