package builder

import (
	"reflect"
	"strings"

	"github.com/erraggy/asyncspec/descriptor"
	"github.com/erraggy/asyncspec/internal/naming"
	"github.com/erraggy/asyncspec/internal/pathutil"
	"github.com/erraggy/asyncspec/spec"
)

// In-channel message names for each direction.
const (
	PublishMessageName   = "Message"
	SubscribeMessageName = "SubscribeMessage"
)

// SubscribeMarker is inserted before the last segment of a receive-side
// message title.
const SubscribeMarker = "Subscribe"

// direction is the side of a channel an operation spec describes.
type direction int

const (
	directionSubscribe direction = iota
	directionPublish
)

func (d direction) messageName() string {
	if d == directionSubscribe {
		return SubscribeMessageName
	}
	return PublishMessageName
}

func (d direction) operationKey(channel string) string {
	if d == directionSubscribe {
		return channel + SubscribeMarker
	}
	return channel
}

func (d direction) action() spec.Action {
	if d == directionSubscribe {
		return spec.ActionReceive
	}
	return spec.ActionSend
}

func (d direction) String() string {
	if d == directionSubscribe {
		return "subscribe"
	}
	return "publish"
}

// channelSide is one (channel spec, direction) pair yielded by an endpoint.
type channelSide struct {
	spec   descriptor.ChannelSpec
	op     *descriptor.OperationSpec
	dir    direction
	source string
}

// pendingChannel is a channel record before its messages are resolved.
type pendingChannel struct {
	channel  *spec.Channel
	messages map[string]pendingMessage
	sources  map[string]string
}

// subscribeTitle relabels a receive-side message title so it cannot
// collide with the send-side message of the same channel:
// "orders:Message" -> "orders:SubscribeMessage".
func subscribeTitle(title string) string {
	if title == "" {
		return ""
	}
	i := strings.LastIndexByte(title, ':')
	if i < 0 {
		return SubscribeMarker + title
	}
	return title[:i+1] + SubscribeMarker + title[i+1:]
}

// addChannel merges one channel side into the channel table. Later sides
// overwrite scalar fields and same-named messages of earlier ones; both
// directions of one channel live side by side under different message
// names.
func (a *assembly) addChannel(side channelSide) error {
	key := naming.ClearKey(side.spec.Name)
	if key == "" {
		return newDescriptorError(ComponentChannel, side.spec.Name, "", "name", "channel has no name")
	}
	if side.op.Message == nil {
		return newDescriptorError(ComponentChannel, side.spec.Name, "", side.dir.String(), "operation has no message")
	}

	pc, exists := a.channels[key]
	if !exists {
		pc = &pendingChannel{
			channel:  &spec.Channel{Address: side.spec.Name},
			messages: make(map[string]pendingMessage),
			sources:  make(map[string]string),
		}
		a.channels[key] = pc
	} else if pc.channel.Address != side.spec.Name {
		if err := a.comps.collide(ComponentChannel, key, pc.channel.Address, side.spec.Name); err != nil {
			return err
		}
		pc.channel.Address = side.spec.Name
	}

	ch := pc.channel
	if side.spec.Description != "" {
		ch.Description = side.spec.Description
	}
	if side.spec.Bindings != nil {
		ch.Bindings = side.spec.Bindings
	}
	for _, param := range pathutil.AddressParams(side.spec.Name) {
		if ch.Parameters == nil {
			ch.Parameters = make(map[string]*spec.Parameter)
		}
		if ch.Parameters[param] == nil {
			ch.Parameters[param] = &spec.Parameter{}
		}
	}

	name := side.dir.messageName()
	title := side.op.Message.Title
	if side.dir == directionSubscribe {
		title = subscribeTitle(title)
	}
	next := pendingMessage{title: title, desc: side.op.Message}
	if prev, ok := pc.messages[name]; ok && (prev.title != next.title || !reflect.DeepEqual(prev.desc, next.desc)) {
		if err := a.comps.collide(ComponentChannel, key+"/"+name, pc.sources[name], side.source); err != nil {
			return err
		}
	}
	pc.messages[name] = next
	pc.sources[name] = side.source

	a.log.Debug("built channel", "channel", key, "message", name, "source", side.source)
	return nil
}
