// Package pragma classifies single lines of shader source against the
// glsipy pragma dialect:
//
//	#pragma glsipy: <alias> = require(<path>[, key=value...])
//	#pragma export(<arg>)
//	#pragma glsipy: export(<name>)
//
// Every argument may be written bare, single-quoted or double-quoted. The
// classifier is purely textual; it never validates the surrounding shader
// code, and a line that matches no form is plain content.
package pragma
