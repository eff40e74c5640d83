package internal

import (
	"context"
	"sync"
	"time"

	"personix/internal/logging"
	"personix/internal/msgtypes"
	"personix/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
)

// SpinnerControl suspends and resumes the global spinner ticker. The spinner
// goroutine starts suspended and is resumed once the program is running.
type SpinnerControl struct {
	suspended chan bool
	ctx       context.Context
}

func NewSpinnerControl(ctx context.Context) *SpinnerControl {
	return &SpinnerControl{
		suspended: make(chan bool, 1),
		ctx:       ctx,
	}
}

// Suspend pauses the spinner
func (sc *SpinnerControl) Suspend() {
	select {
	case sc.suspended <- true:
	default:
		// Already suspended
	}
}

// Resume starts/resumes the spinner
func (sc *SpinnerControl) Resume() {
	select {
	case sc.suspended <- false:
	default:
		// Already resumed
	}
}

// SetupSubscriptions starts the background goroutines that feed the message
// channel: the spinner tick relay and the profile refresh ticker. The returned
// cleanup cancels both and waits for them to finish before closing ch.
func SetupSubscriptions(ctx context.Context, cancel context.CancelFunc, ch chan tea.Msg) (*SpinnerControl, func()) {
	wg := sync.WaitGroup{}
	auxlog := logging.GetAuxLogger()

	spinnerCtrl := NewSpinnerControl(ctx)

	{
		spinner, sub := tui.StartSpinner(spinnerCtrl.ctx)
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer auxlog.Println("Spinner goroutine terminated")
			suspended := true // resumed by Run once bubbletea is up

			for {
				if suspended {
					select {
					case suspend := <-spinnerCtrl.suspended:
						suspended = suspend
						if !suspend {
							spinner.Reset()
						}
					case <-spinnerCtrl.ctx.Done():
						return
					}
				} else {
					select {
					case ev, ok := <-sub:
						if !ok {
							auxlog.Println("Spinner channel closed")
							return
						}
						select {
						case ch <- ev:
						case <-spinnerCtrl.ctx.Done():
							return
						}
					case suspend := <-spinnerCtrl.suspended:
						suspended = suspend
						if suspend {
							spinner.Reset()
						}
					case <-spinnerCtrl.ctx.Done():
						return
					}
				}
			}
		}()
	}

	{
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer auxlog.Println("Profile ticker goroutine terminated")

			profileTicker := time.NewTicker(tui.ProfileTickerInterval)
			defer profileTicker.Stop()

			for {
				select {
				case <-profileTicker.C:
					select {
					case ch <- msgtypes.TickerUpdateProfileMsg{}:
					case <-ctx.Done():
						return
					}
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	return spinnerCtrl, func() {
		auxlog.Println("Stopping background goroutines")
		cancel()
		wg.Wait()
		close(ch)
		auxlog.Println("All background goroutines stopped")
	}
}
