package script

import (
	"fmt"
	"sort"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ardnew/softshift/chain"
	"github.com/ardnew/softshift/pkg"
)

// Run executes a Starlark program against dev and returns its globals.
//
// src follows starlark.ExecFileOptions: nil reads filename, otherwise a
// string, []byte or io.Reader. Output of the print builtin goes to out; if
// out is nil it is logged at info level.
func Run(dev *chain.Device, filename string, src any, out func(msg string)) (starlark.StringDict, error) {
	if out == nil {
		out = func(msg string) {
			pkg.LogInfo(pkg.ComponentScript, msg, "file", filename)
		}
	}
	thread := &starlark.Thread{
		Name:  filename,
		Print: func(_ *starlark.Thread, msg string) { out(msg) },
	}
	opts := syntax.FileOptions{}

	globals, err := starlark.ExecFileOptions(&opts, thread, filename, src, Predeclared(dev))
	if err != nil {
		if evalErr, ok := err.(*starlark.EvalError); ok {
			pkg.LogDebug(pkg.ComponentScript, "script failed", "backtrace", evalErr.Backtrace())
		}
		return nil, err
	}
	return globals, nil
}

// Predeclared returns the builtins bound to dev.
func Predeclared(dev *chain.Device) starlark.StringDict {
	return starlark.StringDict{
		"registers": starlark.MakeInt(dev.Len()),
		"flush":     starlark.NewBuiltin("flush", deviceFlush(dev)),
		"store":     starlark.NewBuiltin("store", deviceStore(dev)),
		"fill":      starlark.NewBuiltin("fill", deviceFill(dev)),
		"byte":      starlark.NewBuiltin("byte", newByte(dev)),
		"span":      starlark.NewBuiltin("span", newSpan(dev)),
		"bit":       starlark.NewBuiltin("bit", newBit(dev)),
	}
}

type builtinFunc = func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error)

func deviceFlush(dev *chain.Device) builtinFunc {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
			return nil, err
		}
		if err := dev.Flush(); err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}
		return starlark.None, nil
	}
}

func deviceStore(dev *chain.Device) builtinFunc {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
			return nil, err
		}
		return bytesToList(dev.Bytes()), nil
	}
}

func deviceFill(dev *chain.Device) builtinFunc {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var v int
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "value", &v); err != nil {
			return nil, err
		}
		value, err := toByte(b.Name(), v)
		if err != nil {
			return nil, err
		}
		dev.Fill(value)
		return starlark.None, nil
	}
}

func newByte(dev *chain.Device) builtinFunc {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var index int
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "index", &index); err != nil {
			return nil, err
		}
		h, err := dev.ByteHandle(index)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}
		return newHandle(fmt.Sprintf("byte(%d)", index), "byte", byteMethods(h)), nil
	}
}

func newSpan(dev *chain.Device) builtinFunc {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var start, end int
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "start", &start, "end", &end); err != nil {
			return nil, err
		}
		h, err := dev.RangeHandle(start, end)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}
		return newHandle(fmt.Sprintf("span(%d, %d)", start, end), "span", spanMethods(h)), nil
	}
}

func newBit(dev *chain.Device) builtinFunc {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var index, bit int
		var autoFlush bool
		if err := starlark.UnpackArgs(b.Name(), args, kwargs,
			"index", &index, "bit", &bit, "auto_flush?", &autoFlush); err != nil {
			return nil, err
		}
		h, err := dev.BitHandle(index, bit, autoFlush)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}
		return newHandle(fmt.Sprintf("bit(%d, %d)", index, bit), "bit", bitMethods(h)), nil
	}
}

// handle is a Starlark value exposing a fixed set of methods.
type handle struct {
	name    string
	typ     string
	methods map[string]builtinFunc
}

var _ starlark.HasAttrs = (*handle)(nil)

func newHandle(name, typ string, methods map[string]builtinFunc) *handle {
	return &handle{name: name, typ: typ, methods: methods}
}

func (h *handle) String() string        { return h.name }
func (h *handle) Type() string          { return h.typ }
func (h *handle) Freeze()               {}
func (h *handle) Truth() starlark.Bool  { return starlark.True }
func (h *handle) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: %s", h.typ) }

func (h *handle) Attr(name string) (starlark.Value, error) {
	fn, ok := h.methods[name]
	if !ok {
		return nil, nil
	}
	return starlark.NewBuiltin(name, fn).BindReceiver(h), nil
}

func (h *handle) AttrNames() []string {
	names := make([]string, 0, len(h.methods))
	for name := range h.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func toByte(fn string, v int) (byte, error) {
	if v < 0 || v > 0xFF {
		return 0, fmt.Errorf("%s: %w: value %d does not fit in a register",
			fn, pkg.ErrInvalidParameter, v)
	}
	return byte(v), nil
}

func bytesToList(data []byte) *starlark.List {
	elems := make([]starlark.Value, len(data))
	for i, v := range data {
		elems[i] = starlark.MakeInt(int(v))
	}
	return starlark.NewList(elems)
}

func listToBytes(fn string, l *starlark.List) ([]byte, error) {
	out := make([]byte, l.Len())
	for i := range out {
		v, err := starlark.AsInt32(l.Index(i))
		if err != nil {
			return nil, fmt.Errorf("%s: element %d: %w", fn, i, err)
		}
		if out[i], err = toByte(fn, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}
