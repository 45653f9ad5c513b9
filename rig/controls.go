// Package rig holds the fly camera math: sampling an intent vector from held
// keys, moving a pose relative to its orientation, and locking the pose's
// forward axis onto a target point.
//
// Poses use a local frame with +X right, +Y up and +Z forward. The identity
// rotation faces world +Z with world +Y up.
package rig

import (
	"fmt"
	"strings"
)

// Action is one of the six camera movement inputs.
type Action uint8

const (
	Forward Action = iota
	Backward
	Left
	Right
	Up
	Down
)

// Actions lists every Action in declaration order.
var Actions = [...]Action{Forward, Backward, Left, Right, Up, Down}

var actionNames = [...]string{
	Forward:  "forward",
	Backward: "backward",
	Left:     "left",
	Right:    "right",
	Up:       "up",
	Down:     "down",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", a)
}

// ParseAction resolves an action name, ignoring case.
func ParseAction(name string) (Action, error) {
	for _, a := range Actions {
		if strings.EqualFold(name, actionNames[a]) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// Controls reports whether an action's key is currently held down.
type Controls interface {
	Held(Action) bool
}

// HeldSet is a fixed set of held actions.
type HeldSet map[Action]bool

func (h HeldSet) Held(a Action) bool {
	return h[a]
}
