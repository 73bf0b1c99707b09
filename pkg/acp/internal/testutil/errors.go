package testutil

import "github.com/acpkit/acp-conform/pkg/acperrs"

func errConnectionClosed() error {
	return acperrs.NewTransportError(
		acperrs.ErrCodeConnectionClosed,
		"agent closed connection",
		nil,
	)
}
