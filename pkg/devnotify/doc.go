// Package devnotify reports device interface arrivals and removals.
//
// A Listener registers for one interface class and runs a pump goroutine,
// locked to its OS thread, that owns the platform registration for as long
// as the listener runs. Decoded events fan out to any number of subscribers:
//
//	l := devnotify.New()
//	events, cancel := l.Subscribe()
//	defer cancel()
//	if err := l.Start(devclass.XnaComposite); err != nil {
//	    return err
//	}
//	defer l.Stop()
//	for ev := range events {
//	    fmt.Println(ev.Kind, ev.Path)
//	}
//
// Subscriber channels are buffered; when a subscriber falls behind, further
// events for it are dropped and logged rather than stalling the pump.
//
// Start fails with types.ErrAlreadyStarted unless the listener is stopped.
// Stop on a stopped listener does nothing. Once Stop returns no further
// events are delivered, and Start may be called again.
package devnotify
