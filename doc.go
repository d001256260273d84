// Package gohooks keeps mutable state for view code that is re-executed from
// scratch on every render.
//
// A view has no persistent identity of its own. gohooks identifies each piece
// of state by the position of the code that asked for it in the call tree, the
// "hooks" model: the same call path on the next render finds the same state.
//
// Core components include:
//   - Runtime: owns a state store and renders a View through a middleware chain
//   - Frame: the per-render position passed explicitly to every hook
//   - Hooks: UseState, UseMemo, Watch, DoOnce, UseParent, UseList
//   - Environment: Provide and Consume pass values down to nested scopes
//   - Dispatch: hands work from other goroutines back to the render loop
//
// Every render runs one garbage collection epoch. State whose call path was
// not visited is purged when the render ends, whether the view returned an
// error, panicked or completed.
//
//	rt := gohooks.New(func(f *gohooks.Frame) error {
//	    count, state := gohooks.UseState(f, func() int { return 0 })
//	    fmt.Println("count:", count)
//	    onClick = func() { _ = state.Update(func(c *int) { *c++ }) }
//	    return nil
//	})
//	_ = rt.Render(ctx)
package gohooks
