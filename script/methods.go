package script

import (
	"fmt"

	"go.starlark.net/starlark"

	"github.com/ardnew/softshift/chain"
	"github.com/ardnew/softshift/pkg"
)

func byteMethods(h *chain.ValueHandle) map[string]builtinFunc {
	return map[string]builtinFunc{
		"set": func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var v int
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "value", &v); err != nil {
				return nil, err
			}
			value, err := toByte(b.Name(), v)
			if err != nil {
				return nil, err
			}
			h.Set(value)
			return starlark.None, nil
		},
		"get": func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
				return nil, err
			}
			return starlark.MakeInt(int(h.Value())), nil
		},
		// update(fn) passes the current value to fn and stores its result,
		// flushing once whether or not fn succeeds.
		"update": func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var fn starlark.Callable
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "fn", &fn); err != nil {
				return nil, err
			}
			g := h.Guard()
			defer g.Release()

			res, err := starlark.Call(thread, fn, starlark.Tuple{starlark.MakeInt(int(*g.Ref()))}, nil)
			if err != nil {
				return nil, err
			}
			v, err := starlark.AsInt32(res)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", b.Name(), err)
			}
			value, err := toByte(b.Name(), v)
			if err != nil {
				return nil, err
			}
			*g.Ref() = value
			return starlark.None, nil
		},
		"flush": handleFlush(h.Flush),
	}
}

func spanMethods(h *chain.RangeHandle) map[string]builtinFunc {
	return map[string]builtinFunc{
		"set": func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var l *starlark.List
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "data", &l); err != nil {
				return nil, err
			}
			data, err := listToBytes(b.Name(), l)
			if err != nil {
				return nil, err
			}
			if err := h.SetData(data); err != nil {
				return nil, fmt.Errorf("%s: %w", b.Name(), err)
			}
			return starlark.None, nil
		},
		"set_value": func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var offset, v int
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "offset", &offset, "value", &v); err != nil {
				return nil, err
			}
			value, err := toByte(b.Name(), v)
			if err != nil {
				return nil, err
			}
			if err := h.SetValue(offset, value); err != nil {
				return nil, fmt.Errorf("%s: %w", b.Name(), err)
			}
			return starlark.None, nil
		},
		"get": func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
				return nil, err
			}
			return bytesToList(h.Bytes()), nil
		},
		// update(fn) passes a list copy of the span to fn and writes the list
		// back once fn returns. The chain is flushed once either way.
		"update": func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var fn starlark.Callable
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "fn", &fn); err != nil {
				return nil, err
			}
			g := h.Guard()
			defer g.Release()

			l := bytesToList(g.Ref())
			if _, err := starlark.Call(thread, fn, starlark.Tuple{l}, nil); err != nil {
				return nil, err
			}
			data, err := listToBytes(b.Name(), l)
			if err != nil {
				return nil, err
			}
			if len(data) != len(g.Ref()) {
				return nil, fmt.Errorf("%s: %w: got %d values, span holds %d",
					b.Name(), pkg.ErrLengthMismatch, len(data), len(g.Ref()))
			}
			copy(g.Ref(), data)
			return starlark.None, nil
		},
		"flush": handleFlush(h.Flush),
	}
}

func bitMethods(h *chain.BitHandle) map[string]builtinFunc {
	return map[string]builtinFunc{
		"high":   bitOp(h.SetHigh),
		"low":    bitOp(h.SetLow),
		"toggle": bitOp(h.Toggle),
		"is_high": func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
				return nil, err
			}
			return starlark.Bool(h.IsHigh()), nil
		},
		"set_auto_flush": func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var on bool
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "on", &on); err != nil {
				return nil, err
			}
			h.SetAutoFlush(on)
			return starlark.None, nil
		},
		"flush": handleFlush(h.Flush),
	}
}

func bitOp(op func() error) builtinFunc {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
			return nil, err
		}
		if err := op(); err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}
		return starlark.None, nil
	}
}

func handleFlush(flush func()) builtinFunc {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
			return nil, err
		}
		flush()
		return starlark.None, nil
	}
}
