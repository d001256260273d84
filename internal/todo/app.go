// Package todo is a todo list built on gohooks. Its view renders to plain
// text and its events are closures captured during the last render.
package todo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/davidroman0O/gohooks"
)

var (
	// ErrUnknownCommand is returned by Exec for commands it does not know.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrEmptyDescription is returned when adding an item without text.
	ErrEmptyDescription = errors.New("empty description")
	// ErrNotRendered is returned when an event runs before the first render.
	ErrNotRendered = errors.New("todo list has not been rendered")
)

// Events are the operations the last render exposed. They hold access
// handles, not values, so they act on the current state when they run.
type Events struct {
	Type      func(text string) error
	Add       func(description string) error
	Toggle    func(n int) error
	Remove    func(n int) error
	Up        func(n int) error
	Down      func(n int) error
	SetFilter func(f Filter) error
	Clear     func() error
}

// App renders the todo list and applies commands to it.
type App struct {
	cfg    Config
	rt     *gohooks.Runtime
	out    strings.Builder
	events *Events
}

// New creates the application. Options configure its runtime.
func New(cfg Config, opts ...gohooks.Option) *App {
	if cfg.Filter == "" {
		cfg.Filter = FilterAll
	}
	if cfg.Seed == "" {
		cfg.Seed = DefaultConfig().Seed
	}

	a := &App{cfg: cfg}
	opts = append([]gohooks.Option{gohooks.WithSeed(cfg.Seed)}, opts...)
	a.rt = gohooks.New(a.render, opts...)
	return a
}

// Runtime returns the runtime rendering the list.
func (a *App) Runtime() *gohooks.Runtime {
	return a.rt
}

// Render renders the list and returns the text.
func (a *App) Render(ctx context.Context) (string, error) {
	if err := a.rt.Render(ctx); err != nil {
		return "", err
	}
	return a.out.String(), nil
}

// View returns the text of the last render.
func (a *App) View() string {
	return a.out.String()
}

// Events returns the events captured by the last render.
func (a *App) Events() (Events, error) {
	if a.events == nil {
		return Events{}, ErrNotRendered
	}
	return *a.events, nil
}

// Exec parses one command line, runs the matching event through the runtime's
// dispatch queue and returns the view rendered afterwards.
//
//	type <text>     set the input buffer
//	add [text]      add text, or the input buffer
//	toggle <n>      mark item n done or not done
//	remove <n>      delete item n
//	up <n>, down <n>
//	filter <all|active|done>
//	clear           delete every done item
func (a *App) Exec(ctx context.Context, line string) (string, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return a.View(), nil
	}

	ev, err := a.Events()
	if err != nil {
		return "", err
	}

	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	var run func() error
	switch strings.ToLower(cmd) {
	case "type":
		run = func() error { return ev.Type(rest) }
	case "add":
		run = func() error { return ev.Add(rest) }
	case "toggle", "remove", "up", "down":
		n, err := strconv.Atoi(rest)
		if err != nil {
			return "", fmt.Errorf("%s needs an item number: %w", cmd, err)
		}
		op := map[string]func(int) error{
			"toggle": ev.Toggle,
			"remove": ev.Remove,
			"up":     ev.Up,
			"down":   ev.Down,
		}[strings.ToLower(cmd)]
		run = func() error { return op(n) }
	case "filter":
		f, err := ParseFilter(rest)
		if err != nil {
			return "", err
		}
		run = func() error { return ev.SetFilter(f) }
	case "clear":
		run = ev.Clear
	default:
		return "", fmt.Errorf("%q: %w", cmd, ErrUnknownCommand)
	}

	var eventErr error
	a.rt.Dispatch(func() { eventErr = run() })
	if _, err := a.rt.RunPending(ctx); err != nil {
		return "", err
	}
	if eventErr != nil {
		return a.View(), eventErr
	}
	return a.View(), nil
}

func (a *App) render(f *gohooks.Frame) error {
	a.out.Reset()

	items, list := gohooks.UseList(f, func() []Item {
		initial := make([]Item, len(a.cfg.Initial))
		for i, description := range a.cfg.Initial {
			initial[i] = Item{ID: i + 1, Description: description}
		}
		return initial
	})
	filter, filterState := gohooks.UseState(f, func() Filter { return a.cfg.Filter })
	input, inputState := gohooks.UseState(f, func() string { return "" })
	_, nextID := gohooks.UseState(f, func() int { return len(a.cfg.Initial) + 1 })

	gohooks.DoOnce(f, func() {
		f.Logger().Info("todo list ready with %d items", len(items))
	})

	fmt.Fprintf(&a.out, "TODO (%s)\n", filter)
	shown, done := 0, 0
	for i, item := range items {
		if item.Done {
			done++
		}
		if !filter.Shows(item) {
			continue
		}
		shown++
		f.Keyed(strconv.Itoa(item.ID), func(f *gohooks.Frame) {
			a.out.WriteString(itemLine(f, i, item))
		})
	}
	if shown == 0 {
		a.out.WriteString("  (nothing to show)\n")
	}
	fmt.Fprintf(&a.out, "> [%s]\n", input)
	fmt.Fprintf(&a.out, "%d items, %d done, %d left\n", len(items), done, len(items)-done)

	index := func(n int) (int, error) {
		if n < 1 || n > list.Len() {
			return 0, fmt.Errorf("no item %d: %w", n, gohooks.ErrIndexOutOfRange)
		}
		return n - 1, nil
	}

	a.events = &Events{
		Type: func(text string) error {
			return inputState.Set(text)
		},
		Add: func(description string) error {
			if description == "" {
				description, _ = inputState.Get()
			}
			description = strings.TrimSpace(description)
			if description == "" {
				return ErrEmptyDescription
			}
			id := nextID.GetOr(1)
			if err := list.Push(Item{ID: id, Description: description}); err != nil {
				return err
			}
			if err := nextID.Set(id + 1); err != nil {
				return err
			}
			return inputState.Set("")
		},
		Toggle: func(n int) error {
			i, err := index(n)
			if err != nil {
				return err
			}
			item := list.Items()[i]
			item.Done = !item.Done
			_, err = list.Replace(i, item)
			return err
		},
		Remove: func(n int) error {
			i, err := index(n)
			if err != nil {
				return err
			}
			_, err = list.Remove(i)
			return err
		},
		Up: func(n int) error {
			i, err := index(n)
			if err != nil {
				return err
			}
			return list.MoveItemUp(i)
		},
		Down: func(n int) error {
			i, err := index(n)
			if err != nil {
				return err
			}
			return list.MoveItemDown(i)
		},
		SetFilter: func(f Filter) error {
			return filterState.Set(f)
		},
		Clear: func() error {
			var kept []Item
			for _, item := range list.Items() {
				if !item.Done {
					kept = append(kept, item)
				}
			}
			return list.Set(kept)
		},
	}
	return nil
}

// itemLine renders one item. Lines of done items only change when the item
// or its position does, so they are memoised.
func itemLine(f *gohooks.Frame, i int, item Item) string {
	if !item.Done {
		return fmt.Sprintf("  %d) [ ] %s\n", i+1, item.Description)
	}

	watchedItem := gohooks.Watch(f, item)
	watchedIndex := gohooks.Watch(f, i)
	line, _ := gohooks.UseMemo(f, watchedItem.Changed || watchedIndex.Changed, func() string {
		return fmt.Sprintf("  %d) [x] %s\n", watchedIndex.Value()+1, watchedItem.Value().Description)
	})
	return line
}
