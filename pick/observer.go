package pick

// Observer receives pick results.
// Both methods get nil when nothing is under the pointer.
type Observer interface {
	OnHover(*Result)
	OnPick(*Result)
}

// ObserverFuncs adapts functions to Observer. Nil fields are ignored.
type ObserverFuncs struct {
	Hover func(*Result)
	Pick  func(*Result)
}

func (o ObserverFuncs) OnHover(r *Result) {
	if o.Hover != nil {
		o.Hover(r)
	}
}

func (o ObserverFuncs) OnPick(r *Result) {
	if o.Pick != nil {
		o.Pick(r)
	}
}
