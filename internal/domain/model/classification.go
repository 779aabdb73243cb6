package model

// Classification is the result of judging one article's content for
// job-posting relevance. A failed or malformed classification degrades to
// the zero value (not relevant) rather than failing the run.
type Classification struct {
	Relevant bool
	Labels   []string
	Summary  string
}
