package leaderboard

import "errors"

var (
	// ErrFetch marks a failure reading the source document.
	ErrFetch = errors.New("leaderboard: fetch failed")
	// ErrParse marks a document that is not valid YAML.
	ErrParse = errors.New("leaderboard: parse failed")
	// ErrShape marks a document that parsed but does not match the leaderboard shape.
	ErrShape = errors.New("leaderboard: shape mismatch")
)
