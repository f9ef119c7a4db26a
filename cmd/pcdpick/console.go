package main

import (
	"errors"
	"strconv"
	"strings"

	"github.com/seqsense/pcdpicker/input"
	"github.com/seqsense/pcdpicker/pick"
	"github.com/seqsense/pcdpicker/scene"
)

var errArgumentNumber = errors.New("invalid number of arguments")
var errInvalidCommand = errors.New("invalid command")

// console drives a picker with line commands.
type console struct {
	doc    *scene.Document
	el     *input.Element
	picker *pick.Picker

	out []string
}

func newConsole(doc *scene.Document) (*console, error) {
	c := &console{
		doc: doc,
		el: input.NewElement(input.Rect{
			Left:   doc.Viewport.Left,
			Top:    doc.Viewport.Top,
			Width:  doc.Viewport.Width,
			Height: doc.Viewport.Height,
		}),
	}
	p, err := pick.New(c.el, doc.Camera,
		pick.WithDevicePixelRatio(doc.DevicePixelRatio),
		pick.WithObserver(pick.ObserverFuncs{
			Hover: func(r *pick.Result) { c.out = append(c.out, "hover "+r.String()) },
			Pick:  func(r *pick.Result) { c.out = append(c.out, "pick "+r.String()) },
		}),
	)
	if err != nil {
		return nil, err
	}
	p.AttachScene(doc.Root)
	c.picker = p
	return c, nil
}

func (c *console) Close() {
	c.picker.Close()
}

func pointerCommand(typ input.EventType) func(c *console, args []float32) error {
	return func(c *console, args []float32) error {
		var id int
		switch len(args) {
		case 2:
		case 3:
			id = int(args[2])
		default:
			return errArgumentNumber
		}
		c.el.Dispatch(input.PointerEvent{
			Type:      typ,
			PointerID: id,
			ClientX:   args[0],
			ClientY:   args[1],
		})
		return nil
	}
}

var consoleCommands = map[string]func(c *console, args []float32) error{
	"move": pointerCommand(input.EventPointerMove),
	"down": pointerCommand(input.EventPointerDown),
	"up":   pointerCommand(input.EventPointerUp),
	"click": func(c *console, args []float32) error {
		if err := pointerCommand(input.EventPointerDown)(c, args); err != nil {
			return err
		}
		return pointerCommand(input.EventPointerUp)(c, args)
	},
	"attach": func(c *console, args []float32) error {
		if len(args) != 0 {
			return errArgumentNumber
		}
		c.picker.AttachScene(c.doc.Root)
		return nil
	},
	"detach": func(c *console, args []float32) error {
		if len(args) != 0 {
			return errArgumentNumber
		}
		c.picker.DetachScene()
		return nil
	},
	"viewport": func(c *console, args []float32) error {
		if len(args) != 4 {
			return errArgumentNumber
		}
		c.el.SetRect(input.Rect{Left: args[0], Top: args[1], Width: args[2], Height: args[3]})
		return nil
	},
}

// Run executes a command line and returns the observer output it produced.
// Empty lines and lines starting with '#' are ignored.
func (c *console) Run(line string) (string, error) {
	args := strings.Fields(line)
	if len(args) == 0 || strings.HasPrefix(args[0], "#") {
		return "", nil
	}
	fn, ok := consoleCommands[args[0]]
	if !ok {
		return "", errInvalidCommand
	}
	var argsFloat []float32
	for i := 1; i < len(args); i++ {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return "", err
		}
		argsFloat = append(argsFloat, float32(f))
	}
	c.out = c.out[:0]
	if err := fn(c, argsFloat); err != nil {
		return "", err
	}
	return strings.Join(c.out, "\n"), nil
}
