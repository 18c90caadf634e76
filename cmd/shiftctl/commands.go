package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ardnew/softshift/chain"
	"github.com/ardnew/softshift/internal/translate"
	"github.com/ardnew/softshift/pkg"
	"github.com/ardnew/softshift/script"
)

// execute runs a single command against dev, writing results to w.
func execute(dev *chain.Device, args []string, w io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no command", pkg.ErrInvalidParameter)
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case "set":
		if len(args) != 2 {
			return usageError(cmd, "<index> <value>")
		}
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		value, err := parseByte(args[1])
		if err != nil {
			return err
		}
		h, err := dev.ByteHandle(index)
		if err != nil {
			return err
		}
		h.Set(value)

	case "write":
		if len(args) < 2 {
			return usageError(cmd, "<start> <value>...")
		}
		start, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		data := make([]byte, len(args)-1)
		for i, s := range args[1:] {
			if data[i], err = parseByte(s); err != nil {
				return err
			}
		}
		h, err := dev.RangeHandle(start, start+len(data))
		if err != nil {
			return err
		}
		if err := h.SetData(data); err != nil {
			return err
		}

	case "bit":
		if len(args) != 3 {
			return usageError(cmd, "<index> <bit> high|low")
		}
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		bit, err := parseIndex(args[1])
		if err != nil {
			return err
		}
		h, err := dev.BitHandle(index, bit, true)
		if err != nil {
			return err
		}
		switch args[2] {
		case "high", "1", "on":
			err = h.SetHigh()
		case "low", "0", "off":
			err = h.SetLow()
		default:
			return fmt.Errorf("%w: level %q", pkg.ErrInvalidParameter, args[2])
		}
		if err != nil {
			return err
		}

	case "flush":
		if err := dev.Flush(); err != nil {
			return err
		}

	case "clear":
		dev.Fill(0)
		if err := dev.Flush(); err != nil {
			return err
		}

	case "show":
		for i, v := range dev.Bytes() {
			fmt.Fprintln(w, translate.From("register %d = 0x%02X", i, v))
		}
		return nil

	case "run":
		if len(args) != 1 {
			return usageError(cmd, "<script.star>")
		}
		_, err := script.Run(dev, args[0], nil, func(msg string) {
			fmt.Fprintln(w, msg)
		})
		if err != nil {
			return err
		}

	default:
		return fmt.Errorf("%w: unknown command %q", pkg.ErrInvalidParameter, cmd)
	}

	fmt.Fprintln(w, translate.From("%d registers flushed (%d flushes)", dev.Len(), dev.Flushes()))
	return nil
}

func usageError(cmd, usage string) error {
	return fmt.Errorf("%w: usage: %s %s", pkg.ErrInvalidParameter, cmd, usage)
}

func parseIndex(s string) (int, error) {
	v, err := strconv.ParseInt(s, 0, 0)
	if err != nil {
		return 0, fmt.Errorf("%w: index %q", pkg.ErrInvalidParameter, s)
	}
	return int(v), nil
}

func parseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: value %q", pkg.ErrInvalidParameter, s)
	}
	return byte(v), nil
}
