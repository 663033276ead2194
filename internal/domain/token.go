package domain

// Token is the unit of resolution produced by the sentence tokenizer.
// Origin is the surface substring of the input phrase; Surface is the
// normalized form used as the lookup key. In the degraded bare-string
// tokenizer mode the two are equal.
type Token struct {
	Origin  string
	Surface string
}

// Outcome is the per-token result of the resolution pipeline. Exactly one
// of (ID, URL) or Err is populated; Word is always set.
type Outcome struct {
	Word string
	ID   string
	URL  string
	Err  error
}

// Resolved reports whether the token was mapped to a pictogram.
func (o Outcome) Resolved() bool { return o.Err == nil }
