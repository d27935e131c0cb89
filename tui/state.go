package tui

type state int

const (
	resolvingState state = iota
	downloadingState
	doneState
	errorState
)
