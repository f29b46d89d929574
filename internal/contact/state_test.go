package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var filled = Form{Name: "Ana", Email: "ana@x.com", Message: "Hi"}

func TestReduceSubmitValid(t *testing.T) {
	msgs := DefaultMessages()
	start := State{Form: filled, Alert: Alert{Message: "old", Kind: AlertError}}

	next, effect := Reduce(start, Event{Kind: EventSubmit}, msgs)

	assert.Equal(t, StatusSending, next.Status)
	assert.True(t, next.Alert.IsZero(), "alert is cleared when sending starts")
	assert.Equal(t, Effect{Dispatch: true, Snapshot: filled}, effect)
}

func TestReduceSubmitInvalidStaysIdle(t *testing.T) {
	msgs := DefaultMessages()

	next, effect := Reduce(State{Form: Form{Name: "Ana"}}, Event{Kind: EventSubmit}, msgs)
	assert.Equal(t, StatusIdle, next.Status)
	assert.False(t, effect.Dispatch)
	assert.Equal(t, Alert{Message: msgs.Required, Kind: AlertError}, next.Alert)

	bad := filled.With(FieldEmail, "not-an-email")
	next, effect = Reduce(State{Form: bad}, Event{Kind: EventSubmit}, msgs)
	assert.Equal(t, StatusIdle, next.Status)
	assert.False(t, effect.Dispatch)
	assert.Equal(t, Alert{Message: msgs.InvalidEmail, Kind: AlertError}, next.Alert)
}

func TestReduceSubmitWhileSendingIgnored(t *testing.T) {
	sending := State{Form: filled, Status: StatusSending}
	next, effect := Reduce(sending, Event{Kind: EventSubmit}, DefaultMessages())

	assert.Equal(t, sending, next)
	assert.False(t, effect.Dispatch)
}

func TestReduceCompletion(t *testing.T) {
	msgs := DefaultMessages()
	sending := State{Form: filled, Status: StatusSending}

	ok, _ := Reduce(sending, Event{Kind: EventSucceeded}, msgs)
	assert.Equal(t, State{Status: StatusIdle, Alert: Alert{Message: msgs.Success, Kind: AlertSuccess}}, ok)

	failed, _ := Reduce(sending, Event{Kind: EventFailed}, msgs)
	assert.Equal(t, StatusIdle, failed.Status)
	assert.Equal(t, filled, failed.Form, "input survives a failure")
	assert.Equal(t, Alert{Message: msgs.Failure, Kind: AlertError}, failed.Alert)
}

func TestReduceStrayCompletionIgnored(t *testing.T) {
	idle := State{Form: filled}
	next, _ := Reduce(idle, Event{Kind: EventSucceeded}, DefaultMessages())
	assert.Equal(t, idle, next)

	next, _ = Reduce(idle, Event{Kind: EventFailed}, DefaultMessages())
	assert.Equal(t, idle, next)
}

func TestReduceInputDuringSending(t *testing.T) {
	sending := State{Form: filled, Status: StatusSending}
	next, effect := Reduce(sending, Event{Kind: EventInput, Field: FieldMessage, Value: "Hi again"}, DefaultMessages())

	assert.Equal(t, StatusSending, next.Status)
	assert.Equal(t, "Hi again", next.Form.Message)
	assert.False(t, effect.Dispatch)
}

func TestSubmitEnabled(t *testing.T) {
	assert.False(t, SubmitEnabled(State{}))
	assert.True(t, SubmitEnabled(State{Form: filled}))
	assert.True(t, SubmitEnabled(State{Form: filled.With(FieldEmail, "nope")}), "format is checked at submit time")
	assert.False(t, SubmitEnabled(State{Form: filled, Status: StatusSending}))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "sending", StatusSending.String())
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "error", StatusError.String())
	assert.Equal(t, "unknown", Status(42).String())
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, StatusSuccess, Outcome(Event{Kind: EventSucceeded}))
	assert.Equal(t, StatusError, Outcome(Event{Kind: EventFailed}))
	assert.Equal(t, StatusIdle, Outcome(Event{Kind: EventSubmit}))
}
