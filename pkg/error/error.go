package error

// WebError is implemented by all typed errors so the REST layer can map
// them to a status code and machine-readable code without string matching.
type WebError interface {
	error
	ErrCode() string
	StatusCode() int
}
