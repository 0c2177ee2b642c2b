package global

import "errors"

var (
	errEmptyTicket             = errors.New("global: login arbiter ticket is empty")
	errAccountAlreadyConnected = errors.New("global: account already has a live connection")
	errNotOwner                = errors.New("global: user does not belong to this account")
)
