// Package eq implements a console-style ten-band stereo graphic equalizer.
//
// The signal chain models a classic large-format console EQ section: a
// signal-presence gate with a hard silence floor, a low-level noise floor and
// trim gain, a fixed three-filter "character" coloration stage, and ten peak
// filters at fixed octave-spaced center frequencies processed at twice the
// host sample rate via zero-stuffing oversampling.
//
// [Processor] is the host-facing entry point; it consumes and produces one
// stereo frame per call. Band gains and trim are plain setters intended to be
// driven from a control-rate path; changes are latched into filter
// coefficients at the next processed frame.
package eq
