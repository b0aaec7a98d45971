package exceptions

import (
	"errors"
	"fmt"

	"github.com/getsentry/raven-go"
)

type ExceptionsModule struct {
	ErrorService *raven.Client `inject:""`
}

// Recover captures a panic and ships it to sentry. Must be deferred.
func (di *ExceptionsModule) Recover(tags map[string]string) (recovered bool) {
	rval := recover()
	if rval == nil {
		return false
	}
	di.Capture(Packet(rval, 3), tags)
	return true
}

// Packet describes a recovered value, skipping frames up to the panic.
func Packet(rval interface{}, skip int) *raven.Packet {
	err, ok := rval.(error)
	if !ok {
		err = errors.New(fmt.Sprint(rval))
	}
	return raven.NewPacket(err.Error(), raven.NewException(err, raven.NewStacktrace(skip, 3, nil)))
}

// Report sends internal errors only; typed user facing failures are noise.
func (di *ExceptionsModule) Report(err error, tags map[string]string) {
	if err == nil || KindOf(err) != Internal {
		return
	}
	packet := raven.NewPacket(err.Error(), raven.NewException(err, raven.NewStacktrace(1, 3, nil)))
	di.Capture(packet, tags)
}

func (di *ExceptionsModule) Capture(packet *raven.Packet, tags map[string]string) {
	if di == nil || di.ErrorService == nil {
		return
	}
	di.ErrorService.Capture(packet, tags)
}
