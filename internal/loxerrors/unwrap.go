package loxerrors

// local interface to be used with errors.Unwrap().
// errors packake does not define separate interface, relies on reflection instead.
type unwrapInterface interface {
	Unwrap() error
}

// LineError is implemented by every error attributed to a source line.
type LineError interface {
	error
	Line() int
}
