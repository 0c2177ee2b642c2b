package worldsim

import "errors"

var errMultiverseNotRunning = errors.New("worldsim: multiverse has not started running yet")
