package hub

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/shenikar/event_dispatch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture: мероприятие 1 с позывными 11 (A1), 12 (A2), 13 (A3); мероприятие 2 с позывным 21
func fixture() (*fakeDirectory, *memStore) {
	dir := newFakeDirectory()
	dir.addEvent(1, true)
	dir.addEvent(2, true)
	dir.addEvent(3, false)
	dir.addCallsign(11, 1, "A1", "Alpha")
	dir.addCallsign(12, 1, "A2", "")
	dir.addCallsign(13, 1, "A3", "")
	dir.addCallsign(21, 2, "B1", "")
	return dir, &memStore{}
}

func TestJoin_Validation(t *testing.T) {
	dir, store := fixture()
	h := newTestHub(dir, store, 16)
	ctx := context.Background()
	c := h.NewClient()

	assert.ErrorIs(t, h.Join(ctx, c, 99, nil), models.ErrNotFound)
	assert.ErrorIs(t, h.Join(ctx, c, 3, nil), models.ErrEventInactive)
	assert.ErrorIs(t, h.Join(ctx, c, 1, id(21)), models.ErrValidation)
	assert.ErrorIs(t, h.Join(ctx, c, 1, id(404)), models.ErrNotFound)

	eventID, _ := c.Room()
	assert.Zero(t, eventID)
	assert.Empty(t, drain(t, c))
}

func TestJoin_ReplaysHistoryFirst(t *testing.T) {
	dir, store := fixture()
	h := newTestHub(dir, store, 16)
	ctx := context.Background()

	base := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	store.raw(&models.Message{EventID: 1, CallsignID: 11, Content: models.TextContent("second"), Timestamp: base.Add(time.Second)})
	store.raw(&models.Message{EventID: 1, CallsignID: 12, Content: models.TextContent("first"), Timestamp: base})
	store.raw(&models.Message{EventID: 2, CallsignID: 21, Content: models.TextContent("other event"), Timestamp: base})

	c := h.NewClient()
	require.NoError(t, h.Join(ctx, c, 1, id(12)))
	_, err := h.SendMessage(ctx, 1, 11, nil, models.TextContent("live"))
	require.NoError(t, err)

	frames := drain(t, c)
	require.Len(t, frames, 2)
	assert.Equal(t, FrameMessageHistory, frames[0].Type)
	history := decodeHistory(t, frames[0])
	require.Len(t, history.Messages, 2)
	assert.Equal(t, "first", history.Messages[0].Content.Text)
	assert.Equal(t, "second", history.Messages[1].Content.Text)

	assert.Equal(t, FrameNewMessage, frames[1].Type)
	live := decodeMessage(t, frames[1])
	assert.Equal(t, "live", live.Content.Text)
	assert.False(t, live.Timestamp.Before(history.Messages[1].Timestamp))
}

func TestJoin_SkipsInvalidStoredRows(t *testing.T) {
	dir, store := fixture()
	h := newTestHub(dir, store, 16)

	store.raw(&models.Message{EventID: 1, CallsignID: 11, Content: models.Content{Type: "telepathy"}, Timestamp: time.Now()})
	store.raw(&models.Message{EventID: 1, CallsignID: 11, Content: models.TextContent("ok"), Timestamp: time.Now()})

	c := h.NewClient()
	require.NoError(t, h.Join(context.Background(), c, 1, nil))

	history := decodeHistory(t, drain(t, c)[0])
	require.Len(t, history.Messages, 1)
	assert.Equal(t, "ok", history.Messages[0].Content.Text)
}

func TestJoin_NotifiesOtherMembers(t *testing.T) {
	dir, store := fixture()
	h := newTestHub(dir, store, 16)
	ctx := context.Background()

	first := h.NewClient()
	require.NoError(t, h.Join(ctx, first, 1, id(11)))
	drain(t, first)

	second := h.NewClient()
	require.NoError(t, h.Join(ctx, second, 1, id(12)))

	joined := framesOfType(drain(t, first), FrameUserJoined)
	require.Len(t, joined, 1)
	assert.Contains(t, string(joined[0].Payload), `"display_name":"A2"`)
	assert.Empty(t, framesOfType(drain(t, second), FrameUserJoined))
}

func TestSendMessage_BroadcastReachesEveryMember(t *testing.T) {
	dir, store := fixture()
	h := newTestHub(dir, store, 16)
	ctx := context.Background()

	a1, a2, anon := h.NewClient(), h.NewClient(), h.NewClient()
	require.NoError(t, h.Join(ctx, a1, 1, id(11)))
	require.NoError(t, h.Join(ctx, a2, 1, id(12)))
	require.NoError(t, h.Join(ctx, anon, 1, nil))
	other := h.NewClient()
	require.NoError(t, h.Join(ctx, other, 2, id(21)))
	for _, c := range []*Client{a1, a2, anon, other} {
		drain(t, c)
	}

	msg, err := h.SendMessage(ctx, 1, 11, nil, models.TextContent("  all units  "))
	require.NoError(t, err)
	assert.Equal(t, "all units", msg.Content.Text)

	for _, c := range []*Client{a1, a2, anon} {
		got := framesOfType(drain(t, c), FrameNewMessage)
		require.Len(t, got, 1)
		assert.Equal(t, msg.ID, decodeMessage(t, got[0]).ID)
	}
	assert.Empty(t, drain(t, other))
}

func TestSendMessage_TargetedReachesSenderAndTargetOnly(t *testing.T) {
	dir, store := fixture()
	h := newTestHub(dir, store, 16)
	ctx := context.Background()

	a1, a2, a3, anon := h.NewClient(), h.NewClient(), h.NewClient(), h.NewClient()
	require.NoError(t, h.Join(ctx, a1, 1, id(11)))
	require.NoError(t, h.Join(ctx, a2, 1, id(12)))
	require.NoError(t, h.Join(ctx, a3, 1, id(13)))
	require.NoError(t, h.Join(ctx, anon, 1, nil))
	for _, c := range []*Client{a1, a2, a3, anon} {
		drain(t, c)
	}

	_, err := h.SendMessage(ctx, 1, 11, id(12), models.LocationContent(41.4, 2.17))
	require.NoError(t, err)

	assert.Len(t, framesOfType(drain(t, a1), FrameNewMessage), 1)
	assert.Len(t, framesOfType(drain(t, a2), FrameNewMessage), 1)
	assert.Empty(t, drain(t, a3))
	assert.Empty(t, drain(t, anon))
}

func TestSendMessage_SelfTargetDeliveredOnce(t *testing.T) {
	dir, store := fixture()
	h := newTestHub(dir, store, 16)
	ctx := context.Background()

	a1 := h.NewClient()
	require.NoError(t, h.Join(ctx, a1, 1, id(11)))
	drain(t, a1)

	_, err := h.SendMessage(ctx, 1, 11, id(11), models.TextContent("note to self"))
	require.NoError(t, err)

	assert.Len(t, drain(t, a1), 1)
}

func TestSendMessage_RejectsBeforePersisting(t *testing.T) {
	dir, store := fixture()
	h := newTestHub(dir, store, 16)
	ctx := context.Background()

	c := h.NewClient()
	require.NoError(t, h.Join(ctx, c, 1, id(11)))
	drain(t, c)

	tests := []struct {
		name    string
		eventID int64
		sender  int64
		to      *int64
		content models.Content
		want    error
	}{
		{"empty text", 1, 11, nil, models.TextContent("   "), models.ErrValidation},
		{"unknown type", 1, 11, nil, models.Content{Type: "video"}, models.ErrValidation},
		{"lat out of range", 1, 11, nil, models.LocationContent(91, 0), models.ErrValidation},
		{"sender from another event", 1, 21, nil, models.TextContent("hi"), models.ErrValidation},
		{"unknown sender", 1, 404, nil, models.TextContent("hi"), models.ErrNotFound},
		{"target from another event", 1, 11, id(21), models.TextContent("hi"), models.ErrValidation},
		{"inactive event", 3, 11, nil, models.TextContent("hi"), models.ErrEventInactive},
		{"unknown event", 99, 11, nil, models.TextContent("hi"), models.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.SendMessage(ctx, tt.eventID, tt.sender, tt.to, tt.content)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.Zero(t, store.count())
	assert.Empty(t, drain(t, c))
}

func TestSendMessage_StoreFailureDeliversNothing(t *testing.T) {
	dir, store := fixture()
	h := newTestHub(dir, store, 16)
	ctx := context.Background()

	c := h.NewClient()
	require.NoError(t, h.Join(ctx, c, 1, id(11)))
	drain(t, c)

	store.appendErr = errStoreDown
	_, err := h.SendMessage(ctx, 1, 11, nil, models.LocationContent(1, 2))

	assert.ErrorIs(t, err, errStoreDown)
	assert.Empty(t, drain(t, c))
	_, ok, err := h.Latest(ctx, 1, 11)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSendMessage_DetachedFromCallerCancellation(t *testing.T) {
	dir, store := fixture()
	h := newTestHub(dir, store, 16)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.SendMessage(ctx, 1, 11, nil, models.TextContent("late"))

	require.NoError(t, err)
	assert.NoError(t, store.appendCtxErr)
	assert.Equal(t, 1, store.count())
}

func TestSendMessage_TimestampsNondecreasing(t *testing.T) {
	dir, store := fixture()
	h := newTestHub(dir, store, 16)
	ctx := context.Background()

	clock := []time.Time{
		time.Date(2026, 6, 1, 10, 0, 5, 0, time.UTC),
		time.Date(2026, 6, 1, 10, 0, 1, 0, time.UTC),
		time.Date(2026, 6, 1, 10, 0, 9, 0, time.UTC),
	}
	step := 0
	h.now = func() time.Time {
		ts := clock[step]
		step++
		return ts
	}

	var got []*models.Message
	for i := 0; i < len(clock); i++ {
		msg, err := h.SendMessage(ctx, 1, 11, nil, models.TextContent("tick"))
		require.NoError(t, err)
		got = append(got, msg)
	}

	assert.Equal(t, clock[0], got[1].Timestamp)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Timestamp.Before(got[i-1].Timestamp))
	}
}

func TestSendMessage_ConcurrentSendersKeepStoreOrder(t *testing.T) {
	dir, store := fixture()
	h := newTestHub(dir, store, 512)
	ctx := context.Background()

	watcher := h.NewClient()
	require.NoError(t, h.Join(ctx, watcher, 1, nil))
	drain(t, watcher)

	var wg sync.WaitGroup
	for _, sender := range []int64{11, 12, 13} {
		wg.Add(1)
		go func(sender int64) {
			defer wg.Done()
			for i := 0; i < 30; i++ {
				_, err := h.SendMessage(ctx, 1, sender, nil, models.TextContent("status"))
				assert.NoError(t, err)
			}
		}(sender)
	}
	wg.Wait()

	frames := framesOfType(drain(t, watcher), FrameNewMessage)
	require.Len(t, frames, 90)
	history, err := store.ListByEvent(ctx, 1)
	require.NoError(t, err)
	for i, f := range frames {
		assert.Equal(t, history[i].ID, decodeMessage(t, f).ID)
	}
}

func TestSlowClientIsDropped(t *testing.T) {
	dir, store := fixture()
	h := newTestHub(dir, store, 1)
	ctx := context.Background()

	slow := h.NewClient()
	require.NoError(t, h.Join(ctx, slow, 1, id(12)))

	// history заняла единственное место в очереди
	_, err := h.SendMessage(ctx, 1, 11, nil, models.TextContent("one"))
	require.NoError(t, err)

	select {
	case <-slow.Done():
	default:
		t.Fatal("slow client was not dropped")
	}
	assert.Zero(t, h.Members(1))

	_, err = h.SendMessage(ctx, 1, 11, nil, models.TextContent("two"))
	require.NoError(t, err)
}

func TestSlowClientDrop_NotifiesRoomOnce(t *testing.T) {
	dir, store := fixture()
	h := newTestHub(dir, store, 1)
	ctx := context.Background()

	observer := newClient(16)
	require.NoError(t, h.Join(ctx, observer, 1, id(11)))
	slow := h.NewClient()
	require.NoError(t, h.Join(ctx, slow, 1, id(12)))
	drain(t, observer)

	_, err := h.SendMessage(ctx, 1, 11, nil, models.TextContent("one"))
	require.NoError(t, err)

	frames := drain(t, observer)
	require.Len(t, frames, 2)
	assert.Equal(t, FrameNewMessage, frames[0].Type)
	require.Equal(t, FrameUserLeft, frames[1].Type)
	var left presencePayload
	require.NoError(t, json.Unmarshal(frames[1].Payload, &left))
	require.NotNil(t, left.CallsignID)
	assert.EqualValues(t, 12, *left.CallsignID)

	eventID, _ := slow.Room()
	assert.Zero(t, eventID)

	h.Unregister(slow)
	assert.Empty(t, drain(t, observer))
	assert.Equal(t, 1, h.Members(1))
}

func TestLeave_StopsDeliveryAndNotifies(t *testing.T) {
	dir, store := fixture()
	h := newTestHub(dir, store, 16)
	ctx := context.Background()

	stay, leave := h.NewClient(), h.NewClient()
	require.NoError(t, h.Join(ctx, stay, 1, id(11)))
	require.NoError(t, h.Join(ctx, leave, 1, id(12)))
	drain(t, stay)
	drain(t, leave)

	h.Leave(leave)
	assert.Len(t, framesOfType(drain(t, stay), FrameUserLeft), 1)

	_, err := h.SendMessage(ctx, 1, 11, id(12), models.TextContent("are you there"))
	require.NoError(t, err)
	assert.Empty(t, drain(t, leave))
	assert.Equal(t, 1, store.count())
}

func TestJoin_SwitchingEventsLeavesPreviousRoom(t *testing.T) {
	dir, store := fixture()
	h := newTestHub(dir, store, 16)
	ctx := context.Background()

	c := h.NewClient()
	require.NoError(t, h.Join(ctx, c, 1, id(11)))
	require.NoError(t, h.Join(ctx, c, 2, id(21)))

	assert.Zero(t, h.Members(1))
	assert.Equal(t, 1, h.Members(2))
	eventID, callsignID := c.Room()
	assert.EqualValues(t, 2, eventID)
	assert.EqualValues(t, 21, *callsignID)
}

func TestCloseEvent_EvictsMembers(t *testing.T) {
	dir, store := fixture()
	h := newTestHub(dir, store, 16)
	ctx := context.Background()

	c := h.NewClient()
	require.NoError(t, h.Join(ctx, c, 1, id(11)))
	drain(t, c)

	dir.setActive(1, false)
	h.CloseEvent(1, "event is inactive")

	errs := framesOfType(drain(t, c), FrameError)
	require.Len(t, errs, 1)
	assert.Contains(t, string(errs[0].Payload), CodeEventInactive)
	assert.Zero(t, h.Members(1))

	_, err := h.SendMessage(ctx, 1, 11, nil, models.TextContent("hello?"))
	assert.ErrorIs(t, err, models.ErrEventInactive)
}

// deactivateOnFirstRead закрывает мероприятие сразу после первой проверки активности
func deactivateOnFirstRead(dir *fakeDirectory, h *Hub) {
	var once sync.Once
	dir.afterGetEvent = func(eventID int64) {
		once.Do(func() {
			dir.setActive(eventID, false)
			h.CloseEvent(eventID, "event is inactive")
		})
	}
}

func TestSendMessage_EventClosedAfterValidation(t *testing.T) {
	dir, store := fixture()
	h := newTestHub(dir, store, 16)
	ctx := context.Background()

	c := h.NewClient()
	require.NoError(t, h.Join(ctx, c, 1, id(11)))
	drain(t, c)

	deactivateOnFirstRead(dir, h)
	_, err := h.SendMessage(ctx, 1, 11, nil, models.TextContent("late"))

	assert.ErrorIs(t, err, models.ErrEventInactive)
	assert.Zero(t, store.count())
	assert.Empty(t, framesOfType(drain(t, c), FrameNewMessage))
}

func TestJoin_EventClosedAfterValidation(t *testing.T) {
	dir, store := fixture()
	h := newTestHub(dir, store, 16)
	ctx := context.Background()

	deactivateOnFirstRead(dir, h)
	c := h.NewClient()

	assert.ErrorIs(t, h.Join(ctx, c, 1, id(11)), models.ErrEventInactive)
	assert.Zero(t, h.Members(1))
	assert.Empty(t, drain(t, c))
}

func TestLocations_LazyHydrationAndMonotonicUpdates(t *testing.T) {
	dir, store := fixture()
	h := newTestHub(dir, store, 16)
	ctx := context.Background()

	base := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	store.raw(&models.Message{EventID: 1, CallsignID: 11, Content: models.LocationContent(1, 1), Timestamp: base})
	store.raw(&models.Message{EventID: 1, CallsignID: 12, Content: models.LocationContent(2, 2), Timestamp: base})

	all, err := h.AllLatest(ctx, 1)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.EqualValues(t, 11, all[0].CallsignID)

	h.now = func() time.Time { return base.Add(time.Minute) }
	_, err = h.SendMessage(ctx, 1, 11, nil, models.LocationContent(5, 6))
	require.NoError(t, err)

	latest, ok, err := h.Latest(ctx, 1, 11)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 5.0, *latest.Content.Lat)

	_, _, err = h.Latest(ctx, 1, 21)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = h.AllLatest(ctx, 404)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestJoin_HistoryHidesOtherCallsignsPrivateMessages(t *testing.T) {
	dir, store := fixture()
	h := newTestHub(dir, store, 16)
	ctx := context.Background()

	base := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	store.raw(&models.Message{EventID: 1, CallsignID: 11, Content: models.TextContent("all"), Timestamp: base})
	store.raw(&models.Message{EventID: 1, CallsignID: 11, ToCallsignID: id(13), Content: models.TextContent("for A3"), Timestamp: base.Add(time.Second)})
	store.raw(&models.Message{EventID: 1, CallsignID: 11, ToCallsignID: id(12), Content: models.TextContent("for A2"), Timestamp: base.Add(2 * time.Second)})
	store.raw(&models.Message{EventID: 1, CallsignID: 12, ToCallsignID: id(13), Content: models.TextContent("from A2"), Timestamp: base.Add(3 * time.Second)})

	a2 := h.NewClient()
	require.NoError(t, h.Join(ctx, a2, 1, id(12)))
	var texts []string
	for _, m := range decodeHistory(t, drain(t, a2)[0]).Messages {
		texts = append(texts, m.Content.Text)
	}
	assert.Equal(t, []string{"all", "for A2", "from A2"}, texts)

	observer := h.NewClient()
	require.NoError(t, h.Join(ctx, observer, 1, nil))
	history := decodeHistory(t, drain(t, observer)[0])
	require.Len(t, history.Messages, 1)
	assert.Equal(t, "all", history.Messages[0].Content.Text)
}
