package domain

// Session identifies the shopper for remote calls. It is extracted once at the
// HTTP boundary and passed down explicitly; nothing in the cart path reads
// ambient per-user state.
type Session struct {
	UserID string
	Token  string
}

func (s Session) Valid() bool {
	return s.UserID != ""
}
