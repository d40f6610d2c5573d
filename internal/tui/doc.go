// Package tui is a terminal front end for the task store, built on Bubble Tea.
//
// The Model owns no task state of its own. Every keystroke is turned into a
// store command and the view is re-derived from the store on each render:
//
//	input  (enter)  -> SetPendingText + Commit
//	input  (esc)    -> CancelEdit
//	list   (e)      -> BeginEdit, focus moves to the input
//	list   (d)      -> DeleteTask
//	list   (space)  -> ToggleCompletion
//	search (typing) -> Filter(store.List(), query)
//
// Tab cycles focus between the input line, the search line and the list.
package tui
