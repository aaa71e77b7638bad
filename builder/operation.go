package builder

import (
	"reflect"

	"github.com/erraggy/asyncspec/internal/naming"
	"github.com/erraggy/asyncspec/internal/pathutil"
	"github.com/erraggy/asyncspec/spec"
)

// addOperation builds the operation record for one channel side.
// Receive operations are keyed "<channel>Subscribe" and send operations
// "<channel>", so both directions of a channel coexist.
func (a *assembly) addOperation(side channelSide) error {
	channel := naming.ClearKey(side.spec.Name)
	key := side.dir.operationKey(channel)

	op := &spec.Operation{
		Action:      side.dir.action(),
		Channel:     spec.Ref(pathutil.ChannelRef(channel)),
		Messages:    []*spec.Reference{spec.Ref(pathutil.ChannelMessageRef(channel, side.dir.messageName()))},
		Summary:     side.op.Summary,
		Description: side.op.Description,
		Bindings:    side.op.Bindings,
	}
	if prev, ok := a.operations[key]; ok && !reflect.DeepEqual(prev, op) {
		if err := a.comps.collide(ComponentOperation, key, a.opSources[key], side.source); err != nil {
			return err
		}
	}
	a.operations[key] = op
	a.opSources[key] = side.source

	a.log.Debug("built operation", "operation", key, "action", string(op.Action))
	return nil
}
