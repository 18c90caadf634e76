// Package script drives a register chain from Starlark programs.
//
// [Run] executes a program with builtins bound to a [chain.Device]:
//
//	registers            number of registers in the chain
//	flush()              flush the chain
//	store()              list copy of the shadow store
//	fill(value)          write value to every register, no flush
//	byte(index)          handle with set(v), get(), update(fn), flush()
//	span(start, end)     handle with set(list), set_value(off, v), get(),
//	                     update(fn), flush()
//	bit(index, bit, auto_flush=False)
//	                     handle with high(), low(), toggle(), is_high(),
//	                     set_auto_flush(on), flush()
//
// update(fn) maps onto a chain guard: all changes made inside fn are pushed
// with a single flush when it returns.
//
//	def chase(data):
//	    for i in range(len(data)):
//	        data[i] = 1 << i
//
//	span(0, registers).update(chase)
package script
