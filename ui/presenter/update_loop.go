package presenter

import "github.com/soocke/crop-widget-go/bridge"

// Loop applies host renders on the UI thread.
//
// Tick drains pending host arguments, hands each to the crop presenter in arrival order and
// invokes the scheduler callback. Once Done is closed the next Tick calls OnDone instead and
// stops rescheduling. The zero value is usable (methods are nil-safe).
type Loop struct {
	Crop     *CropPresenter
	Renders  <-chan bridge.Args
	Schedule func()
	Done     <-chan struct{}
	OnDone   func()

	stopped bool
}

func NewLoop(crop *CropPresenter, renders <-chan bridge.Args, schedule func()) *Loop {
	return &Loop{Crop: crop, Renders: renders, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil || l.stopped {
		return
	}
	select {
	case <-l.Done:
		l.stopped = true
		if l.OnDone != nil {
			l.OnDone()
		}
		return
	default:
	}
drain:
	for l.Renders != nil {
		select {
		case args, ok := <-l.Renders:
			if !ok {
				l.Renders = nil
				break drain
			}
			// Errors are logged by the presenter; the placeholder is already shown.
			_ = l.Crop.ApplyArgs(args)
		default:
			break drain
		}
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
