/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package cmn

import "fmt"

// Assert panics if cond is false. Used the way the teacher's cmn.Assert is
// used: for invariants that indicate a corrupt topology or a programming
// error, never for recoverable user-facing failures (those return *Error).
func Assert(cond bool) {
	if !cond {
		panic("assertion failed")
	}
}

// AssertMsg is Assert with a formatted message, mirroring cmn.AssertMsg.
func AssertMsg(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf("assertion failed: "+format, args...))
	}
}
