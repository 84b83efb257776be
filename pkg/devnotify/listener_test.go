package devnotify_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pnpkit/pkg/devclass"
	"github.com/joshuapare/pnpkit/pkg/devnotify"
	"github.com/joshuapare/pnpkit/pkg/devnotify/devnotifytest"
	"github.com/joshuapare/pnpkit/pkg/types"
)

const padPath = `\\?\USB#VID_045E&PID_028E#1#{d61ca365-5af4-4486-998b-9db4734c6ca3}`

func newListener(t *testing.T) (*devnotify.Listener, *devnotifytest.Source) {
	t.Helper()
	src := devnotifytest.New()
	l := devnotify.New(devnotify.WithSource(src))
	t.Cleanup(func() { _ = l.Close() })
	return l, src
}

func recv(t *testing.T, ch <-chan devnotify.Event) devnotify.Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return devnotify.Event{}
}

func TestListener_DeliversArrivalAndRemoval(t *testing.T) {
	l, src := newListener(t)
	events, cancel := l.Subscribe()
	defer cancel()

	require.NoError(t, l.Start(devclass.XnaComposite))
	require.Equal(t, devnotify.Listening, l.State())
	require.Equal(t, devclass.XnaComposite, src.Last().Class)

	require.NoError(t, src.Arrive(padPath))
	ev := recv(t, events)
	require.Equal(t, devnotify.Arrival, ev.Kind)
	require.Equal(t, padPath, ev.Path)
	require.Equal(t, devclass.XnaComposite, ev.Class)

	require.NoError(t, src.Remove(padPath))
	ev = recv(t, events)
	require.Equal(t, devnotify.Removal, ev.Kind)
}

func TestListener_StartTwiceFails(t *testing.T) {
	l, src := newListener(t)
	require.NoError(t, l.Start(devclass.USBDevice))

	err := l.Start(devclass.USBDevice)
	require.ErrorIs(t, err, types.ErrAlreadyStarted)
	require.True(t, errdefs.IsFailedPrecondition(err))
	require.Equal(t, 1, src.Opens())
	require.Equal(t, devnotify.Listening, l.State())
}

func TestListener_StopWhenStoppedIsNoop(t *testing.T) {
	l, src := newListener(t)
	require.NoError(t, l.Stop())
	require.Equal(t, devnotify.Stopped, l.State())
	require.Zero(t, src.Opens())
}

func TestListener_NoEventsAfterStop(t *testing.T) {
	l, src := newListener(t)
	events, cancel := l.Subscribe()
	defer cancel()

	require.NoError(t, l.Start(devclass.USBDevice))
	sess := src.Last()
	require.NoError(t, l.Stop())
	require.Equal(t, devnotify.Stopped, l.State())
	require.True(t, sess.Closed())

	require.ErrorIs(t, src.Arrive(padPath), devnotifytest.ErrNoSession)
	select {
	case ev := <-events:
		t.Fatalf("unexpected event after stop: %v", ev)
	default:
	}
}

func TestListener_RestartAfterStop(t *testing.T) {
	l, src := newListener(t)
	events, cancel := l.Subscribe()
	defer cancel()

	require.NoError(t, l.Start(devclass.USBDevice))
	require.NoError(t, l.Stop())
	require.NoError(t, l.Start(devclass.HID))
	require.Equal(t, 2, src.Opens())
	require.Equal(t, devclass.HID, src.Last().Class)

	require.NoError(t, src.Arrive(`\\?\HID#1`))
	ev := recv(t, events)
	require.Equal(t, devclass.HID, ev.Class)
}

func TestListener_RegistrationFailure(t *testing.T) {
	l, src := newListener(t)
	cause := errors.New("filter rejected")
	src.FailOpen(cause)

	err := l.Start(devclass.USBDevice)
	require.ErrorIs(t, err, types.ErrRegistrationFailed)
	require.ErrorIs(t, err, cause)
	require.Equal(t, devnotify.Stopped, l.State())

	src.FailOpen(nil)
	require.NoError(t, l.Start(devclass.USBDevice))
}

func TestListener_IgnoresForeignBroadcasts(t *testing.T) {
	l, src := newListener(t)
	events, cancel := l.Subscribe()
	defer cancel()
	require.NoError(t, l.Start(devclass.USBDevice))

	require.NoError(t, src.Last().Broadcast(0x0007, nil))
	require.NoError(t, src.Arrive(padPath))
	require.Equal(t, padPath, recv(t, events).Path)
}

func TestListener_Callbacks(t *testing.T) {
	l, src := newListener(t)

	var mu sync.Mutex
	var arrived, removed []string
	stopArrival := l.OnArrival(func(ev devnotify.Event) {
		mu.Lock()
		defer mu.Unlock()
		arrived = append(arrived, ev.Path)
	})
	defer l.OnRemoval(func(ev devnotify.Event) {
		mu.Lock()
		defer mu.Unlock()
		removed = append(removed, ev.Path)
	})()

	seen := func() ([]string, []string) {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), arrived...), append([]string(nil), removed...)
	}

	require.NoError(t, l.Start(devclass.USBDevice))
	require.NoError(t, src.Arrive("a"))
	require.NoError(t, src.Remove("a"))
	require.Eventually(t, func() bool {
		a, r := seen()
		return len(a) == 1 && len(r) == 1
	}, 2*time.Second, 5*time.Millisecond)

	stopArrival()
	require.NoError(t, src.Arrive("b"))
	require.NoError(t, l.Stop())

	a, r := seen()
	require.Equal(t, []string{"a"}, a)
	require.Equal(t, []string{"a"}, r)
}

func TestListener_StopFromCallback(t *testing.T) {
	l, src := newListener(t)

	stopped := make(chan error, 1)
	defer l.OnArrival(func(devnotify.Event) {
		stopped <- l.Stop()
	})()

	require.NoError(t, l.Start(devclass.XnaComposite))
	require.NoError(t, src.Arrive(padPath))

	select {
	case err := <-stopped:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatalf("Stop from a callback did not return, state=%s", l.State())
	}
	require.Equal(t, devnotify.Stopped, l.State())
	require.True(t, src.Last().Closed())

	// The listener can start again afterwards.
	require.NoError(t, l.Start(devclass.XnaComposite))
	require.Equal(t, devnotify.Listening, l.State())
}

func TestListener_CallbackBlockedDoesNotStallSubscribers(t *testing.T) {
	l, src := newListener(t)
	events, cancel := l.Subscribe()
	defer cancel()

	release := make(chan struct{})
	var calls sync.WaitGroup
	calls.Add(1)
	var once sync.Once
	defer l.OnArrival(func(devnotify.Event) {
		once.Do(calls.Done)
		<-release
	})()

	require.NoError(t, l.Start(devclass.USBDevice))
	require.NoError(t, src.Arrive("a"))
	calls.Wait()
	require.NoError(t, src.Arrive("b"))

	require.Equal(t, "a", recv(t, events).Path)
	require.Equal(t, "b", recv(t, events).Path)

	// "b" is still queued for the blocked callback; Stop discards it.
	require.NoError(t, l.Stop())
	close(release)
}

func TestListener_CloseFromCallback(t *testing.T) {
	l, src := newListener(t)

	closed := make(chan error, 1)
	l.OnRemoval(func(devnotify.Event) {
		closed <- l.Close()
	})

	require.NoError(t, l.Start(devclass.USBDevice))
	require.NoError(t, src.Remove(padPath))

	select {
	case err := <-closed:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Close from a callback did not return")
	}
	require.Equal(t, devnotify.Stopped, l.State())
}

func TestListener_CancelClosesChannel(t *testing.T) {
	l, _ := newListener(t)
	events, cancel := l.Subscribe()
	cancel()
	cancel()
	_, open := <-events
	require.False(t, open)
}

func TestListener_SlowSubscriberDoesNotBlock(t *testing.T) {
	src := devnotifytest.New()
	l := devnotify.New(devnotify.WithSource(src), devnotify.WithBufferSize(1))
	defer l.Close()
	events, cancel := l.Subscribe()
	defer cancel()

	require.NoError(t, l.Start(devclass.USBDevice))
	for i := 0; i < 5; i++ {
		require.NoError(t, src.Arrive(padPath))
	}
	require.NoError(t, l.Stop())

	require.Len(t, events, 1)
}

func TestListener_CloseClosesSubscriptions(t *testing.T) {
	src := devnotifytest.New()
	l := devnotify.New(devnotify.WithSource(src))
	events, _ := l.Subscribe()
	require.NoError(t, l.Start(devclass.USBDevice))

	require.NoError(t, l.Close())
	require.Equal(t, devnotify.Stopped, l.State())
	_, open := <-events
	require.False(t, open)
}
